package domain

// RecommendationWithCluster - рекомендация вместе с кластером, к которому она относится
type RecommendationWithCluster struct {
	Recommendation
	Cluster *Cluster `json:"cluster"`
}

// ResultsSummary - агрегаты по результатам области
type ResultsSummary struct {
	OverallWalkability   float64 `json:"overall_walkability"`
	TotalClusters        int     `json:"total_clusters"`
	CriticalAreas        int     `json:"critical_areas"`
	TotalRecommendations int     `json:"total_recommendations"`
}

// AreaResults - полная проекция результатов анализа области
type AreaResults struct {
	Area            *Area                        `json:"area"`
	Clusters        []*Cluster                   `json:"clusters"`
	Recommendations []*RecommendationWithCluster `json:"recommendations"`
	Summary         ResultsSummary               `json:"summary"`
}
