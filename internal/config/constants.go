package config

// Default paths
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bibliosmart.db"

	// DefaultBackupDir is the default directory for collection snapshots
	DefaultBackupDir = "./backups"
)
