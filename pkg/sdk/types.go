package sdk

const (
	StatusRunning = "running"
	StatusStopped = "stopped"
)

// Result is the minimum reply of every mutating endpoint. Message is meant to
// be shown to the user verbatim whatever Success says.
type Result struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
}

type Status struct {
	Status      string   `json:"status" yaml:"status"`
	HasJar      bool     `json:"has_jar" yaml:"has_jar"`
	Worlds      []string `json:"worlds" yaml:"worlds"`
	ActiveWorld string   `json:"active_world,omitempty" yaml:"active_world,omitempty"`
}

func (s Status) Running() bool {
	return s.Status == StatusRunning
}

type Health struct {
	Status        string  `json:"status" yaml:"status"`
	CPUPercent    float64 `json:"cpu_percent" yaml:"cpu_percent"`
	MemoryMB      float64 `json:"memory_mb" yaml:"memory_mb"`
	UptimeSeconds int64   `json:"uptime_seconds" yaml:"uptime_seconds"`
}

func (h Health) Running() bool {
	return h.Status == StatusRunning
}

type Console struct {
	Output []string `json:"output" yaml:"output"`
}

// Properties is the raw server.properties document. Success is false when the
// file does not exist yet.
type Properties struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Content string `json:"content" yaml:"content"`
}

type Backup struct {
	Name    string  `json:"name" yaml:"name"`
	SizeMB  float64 `json:"size_mb" yaml:"size_mb"`
	Created string  `json:"created" yaml:"created"`
}

type Users struct {
	Users       []string `json:"users" yaml:"users"`
	CurrentUser string   `json:"current_user" yaml:"current_user"`
}

type CommandRequest struct {
	Command string `json:"command"`
}

type SetWorldRequest struct {
	World string `json:"world"`
}

type PropertiesRequest struct {
	Content string `json:"content"`
}

type AddUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DeleteUserRequest struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
