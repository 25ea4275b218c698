package worktime

import (
	"testing"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestRequestValidate(t *testing.T) {
	t.Parallel()

	valid := CreateRequestRequest{
		EmployeeID:      "emp-1",
		Type:            RequestTypeOvertime,
		DurationMinutes: 45,
		Reason:          "release night",
	}

	t.Run("valid request passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid.Validate())
	})

	t.Run("employee ID is required", func(t *testing.T) {
		t.Parallel()

		req := valid
		req.EmployeeID = ""
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "employee_id")
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		t.Parallel()

		req := valid
		req.Type = RequestType("LUNCH")
		assert.Error(t, req.Validate())
	})

	t.Run("negative duration is rejected", func(t *testing.T) {
		t.Parallel()

		req := valid
		req.DurationMinutes = -5
		assert.Error(t, req.Validate())
	})

	t.Run("early arrival must be manager-initiated", func(t *testing.T) {
		t.Parallel()

		req := valid
		req.Type = RequestTypeEarly
		assert.Error(t, req.Validate())

		req.IsManagerInitiated = true
		assert.NoError(t, req.Validate())
	})
}
