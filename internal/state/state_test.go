package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-ws/internal/model"
)

func TestDecodeRoundTrip(t *testing.T) {
	st := New()
	st.Products = append(st.Products, model.Product{ID: "p1", Name: "Coffee", Price: 1000, Stock: 7})
	st.ActiveUserID = DefaultAdminID

	doc, err := st.Encode()
	require.NoError(t, err)

	decoded := Decode(doc)
	assert.Equal(t, st.ActiveUserID, decoded.ActiveUserID)
	require.NotNil(t, decoded.FindProduct("p1"))
	assert.Equal(t, 7, decoded.FindProduct("p1").Stock)
	// The bcrypt hash must survive the round trip so logins keep working.
	assert.True(t, decoded.Users[0].CheckPassword(DefaultAdminPassword))
}

func TestDecodeFallsBackToDefaults(t *testing.T) {
	for name, doc := range map[string][]byte{
		"corrupt": []byte("{not json"),
		"empty":   nil,
		"partial": []byte(`{"products":[{"id":"p1","name":"Coffee","price":5,"stock":2}]}`),
	} {
		t.Run(name, func(t *testing.T) {
			st := Decode(doc)
			require.NotEmpty(t, st.Users, "fallback must include the default admin")
			assert.Equal(t, DefaultAdminID, st.Users[0].ID)
			assert.Equal(t, model.RoleAdmin, st.Users[0].Role)
			assert.NotNil(t, st.Sales)
			assert.NotNil(t, st.Shifts)
			assert.NotNil(t, st.Customers)
			assert.Equal(t, model.DefaultSettings(), st.Settings)
		})
	}
}

func TestOpenShiftResolution(t *testing.T) {
	st := New()
	shiftID := "shift-1"
	st.Users = append(st.Users, model.User{ID: "u1", Username: "cashier", CurrentShiftID: &shiftID})
	st.Shifts = append(st.Shifts, model.Shift{ID: shiftID, UserID: "u1", Status: model.ShiftOpen})

	require.NotNil(t, st.OpenShift("u1"))
	assert.Equal(t, shiftID, st.OpenShift("u1").ID)

	// A closed shift behind the back-reference resolves to no open shift.
	st.Shifts[0].Status = model.ShiftClosed
	assert.Nil(t, st.OpenShift("u1"))

	assert.Nil(t, st.OpenShift("unknown"))
}
