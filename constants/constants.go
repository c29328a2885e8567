package constants

import (
	"os"
	"path/filepath"
)

func GetProjectRoot() string {
	path := os.Getenv("PROJECT_ROOT")
	if path != "" {
		return path
	}
	return "./project_root"
}

func GetScoresDir() string {
	path := os.Getenv("SCORES_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(GetProjectRoot(), "mxl")
}

func GetResultsDir() string {
	path := os.Getenv("RESULTS_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(GetProjectRoot(), "results")
}

func GetIndexCSVPath() string {
	path := os.Getenv("PDMX_CSV_PATH")
	if path != "" {
		return path
	}
	return filepath.Join(GetProjectRoot(), "PDMX.csv")
}

func UseDynamoFallback() bool {
	return os.Getenv("METADATA_DYNAMO") == "1"
}

func GetDynamoEndpoint() string {
	endpoint := os.Getenv("DYNAMO_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

const StepsPerQuarter = 4

const VocabSize = 512

// Reserved ids 0..4, in this order.
var SpecialTokens = []string{"[PAD]", "[CLS]", "[SEP]", "[MASK]", "[UNK]"}

const TokenFileSuffix = ".remi.txt"
const MetadataFileSuffix = ".metadata.json"
const AggregateCSVName = "all_metadata.csv"
const VocabFileName = "remi_tokenizer.json"

var ScoreExtensions = []string{".mxl", ".musicxml", ".xml"}
