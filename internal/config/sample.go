package config

// SampleConfig returns a documented configuration file with every option
func SampleConfig() string {
	return `# instastory configuration
version: "1.0"

source:
  # Producer endpoint serving the analytics document
  endpoint: "http://localhost:8000/api/stats"
  # Local JSON export; takes precedence over endpoint when set
  file: ""
  # Per-request timeout
  timeout: 30s
  # Reload the story when the export file changes (requires file)
  watch: false

ui:
  # default | high-contrast | minimal
  theme: "default"
  # Open the story directly instead of the landing page
  skip_landing: false
  # auto | always | never
  color_mode: "auto"
  emoji: true
  # Triggers from different inputs inside this window count as one action
  frame_window: 16ms

server:
  addr: "localhost:8000"
  payload_file: "stats.json"
  read_timeout: 10s
  write_timeout: 10s

log:
  # The viewer owns the terminal, so logs go to this file or nowhere
  file: ""
  verbose: false
`
}

// MinimalSampleConfig returns a compact configuration with essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"
source:
  endpoint: "http://localhost:8000/api/stats"
ui:
  theme: "default"
`
}
