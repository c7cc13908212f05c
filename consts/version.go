package consts

// These will be injected via -ldflags at build time
var (
	gitSha    string = "unknown"
	gitTag    string = "unknown"
	buildDate string = "unknown"
)

const ProjectName = "nyaa-indexer"

func GetBuildInfo() map[string]string {
	return map[string]string{
		"revision":   gitSha,
		"version":    gitTag,
		"build_date": buildDate,
	}
}

func Version() string {
	return gitTag
}
