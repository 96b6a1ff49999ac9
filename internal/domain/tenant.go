package domain

// Tenant scopes every data access to one business owner. It is threaded
// explicitly through services instead of living in ambient globals.
type Tenant struct {
	OwnerID  string `json:"owner_id"`
	DeviceID string `json:"device_id,omitempty"`
}
