package cli

import "tcm/internal/config"

// Flags holds command-line flags
type Flags struct {
	// Global
	APIURL   string
	LogFile  string
	LogLevel string

	// List views
	Search   string
	Status   string
	Sort     string
	Order    string
	Page     int
	PageSize int

	// Record fields
	Title       string
	Description string
	Priority    string
	ExecStatus  string
	SuiteID     string
	AssigneeID  string
	Name        string

	Yes bool

	// Development backend
	ServeAddr   string
	StorageType string
	SeedFile    string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		APIURL:      f.APIURL,
		LogFile:     f.LogFile,
		LogLevel:    f.LogLevel,
		ServeAddr:   f.ServeAddr,
		StorageType: f.StorageType,
		SeedFile:    f.SeedFile,
	}
}
