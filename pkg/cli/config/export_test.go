package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output, sentryDSN, sentryEnv string) *Logger {
	return &Logger{
		level:     level,
		format:    format,
		output:    output,
		sentryDSN: sentryDSN,
		sentryEnv: sentryEnv,
	}
}

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}
