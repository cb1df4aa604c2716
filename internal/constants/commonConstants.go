package constants

type ServiceStatus string

const (
	ServiceStatusOk   ServiceStatus = "ok"
	ServiceStatusDown ServiceStatus = "down"
)

// MaxRequestBodyBytes caps create payloads; a borehole is a few hundred bytes.
const MaxRequestBodyBytes = 1 << 20
