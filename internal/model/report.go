package model

// CadenceStats describes a channel's publishing rhythm. AverageDays is nil
// with fewer than two uploads; ConsistencyScore is always in [0,1] and
// stays at the neutral 0 when fewer than two gaps exist.
type CadenceStats struct {
	AverageDays      *float64 `json:"averageDays"`
	Last30Days       int      `json:"last30Days"`
	ConsistencyScore float64  `json:"consistencyScore"`
	Summary          string   `json:"summary"`
}

// KeywordInsight is one ranked recurring term across recent titles and
// descriptions. Keyword is lowercased and stopword-free.
type KeywordInsight struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// ActionItem is a single recommendation surfaced to the creator.
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Playbook is the narrative bundle that accompanies the action list.
type Playbook struct {
	NarrativeHook      string   `json:"narrativeHook"`
	CadenceFocus       string   `json:"cadenceFocus"`
	PackagingTips      []string `json:"packagingTips"`
	CollaborationIdeas []string `json:"collaborationIdeas"`
}

// AnalysisReport is the sole externally visible output of the pipeline.
// The field names match the shape the web client consumes.
type AnalysisReport struct {
	Channel         Channel          `json:"channel"`
	LatestUploads   []Video          `json:"latestUploads"`
	UploadCadence   CadenceStats     `json:"uploadCadence"`
	KeywordInsights []KeywordInsight `json:"keywordInsights"`
	Actions         []ActionItem     `json:"actions"`
	Playbook        Playbook         `json:"playbook"`
}
