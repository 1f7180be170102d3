package flowcomm

const (
	// Name is the service name reported in logs and health responses
	Name = "flowcomm"

	// Version is the service version reported in logs and health responses
	Version = "0.1.0"
)
