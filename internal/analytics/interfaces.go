package analytics

//go:generate mockgen -destination=mocks/mock_analytics.go -package=analytics_mocks -typed github.com/semanticmatter/sparql-mcp-ontology/internal/analytics Service

// Service emits anonymous usage events. Implementations must be safe for
// concurrent use; tool handlers emit from arbitrary goroutines.
type Service interface {
	Disable()
	Enable()
	EmitEvent(event TrackEvent)
	NewStartupEvent(startupEventInfo StartupEventInfo) TrackEvent
	NewToolsEvent(toolUsed string) TrackEvent
}
