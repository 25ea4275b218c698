package payroll

import "errors"

var ErrPayrollNotFound = errors.New("payroll not found")
