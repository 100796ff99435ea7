package ports

type DecisionMetrics interface {
	RecordDecision(kind string)
	RecordNotFound()
}
