package logger

// Component-specific logger functions

// DB returns a logger for statements issued by the orm layer
func DB() Logger {
	return WithField("component", "db")
}

// Service returns a logger for entity service operations
func Service() Logger {
	return WithField("component", "service")
}

// Seed returns a logger for the seed orchestrator
func Seed() Logger {
	return WithField("component", "seed")
}

// CLI returns a logger for CLI operations
func CLI() Logger {
	return WithField("component", "cli")
}
