package config

import "time"

const (
	// DefaultAPIURL is where the original json-server backend listens
	DefaultAPIURL = "http://localhost:5000"
	// DefaultHTTPTimeout of zero leaves requests to the transport's own behaviour
	DefaultHTTPTimeout time.Duration = 0
	// DefaultEnvFile is loaded from the working directory when present
	DefaultEnvFile = ".env"
	// DefaultLogFile is the log file name under the user config directory.
	// Logs go to a file to stay away from the terminal UI.
	DefaultLogFile = "tcm.log"
	// DefaultLogLevel is the default zap level
	DefaultLogLevel = "info"
	// DefaultLogFormat is the default zap encoder
	DefaultLogFormat = "console"
	// DefaultPreferencesFile is the file name under the user config directory
	DefaultPreferencesFile = "preferences.json"
	// DefaultAppDir is the directory name under the user config directory
	DefaultAppDir = "tcm"
	// DefaultPageSize is the initial number of rows per page in list views
	DefaultPageSize = 5

	// DefaultServeAddr is the listen address of the development backend
	DefaultServeAddr = "127.0.0.1:5000"
	// DefaultStorageType is the development backend repository
	DefaultStorageType = "memory"

	DefaultDBHost     = "127.0.0.1"
	DefaultDBPort     = "3306"
	DefaultDBUser     = "root"
	DefaultDBDatabase = "tcm"
)

// PageSizeOptions are the page sizes list views cycle through
var PageSizeOptions = []int{5, 10, 15}
