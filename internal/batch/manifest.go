package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one file in the output manifest.
type ManifestEntry struct {
	Input  string `json:"input"`
	Frame  uint64 `json:"frame"`
	Output string `json:"output,omitempty"`
	Bytes  int    `json:"bytes"`
	Error  string `json:"error,omitempty"`
}

// WriteManifest writes the frame assignment of a run as JSON. Keys are
// never written; the frame numbers are public.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Input: r.Path,
			Frame: r.Frame,
			Bytes: r.Bytes,
			Error: r.Error,
		}
		if r.Success {
			entries[i].Output = filepath.Base(r.Output)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ManifestJobs turns the successful entries of a manifest into jobs that
// read the encrypted files from dir.
func ManifestJobs(dir string, entries []ManifestEntry) []Job {
	var jobs []Job
	for _, e := range entries {
		if e.Output == "" {
			continue
		}
		jobs = append(jobs, Job{Path: filepath.Join(dir, e.Output), Frame: e.Frame})
	}
	return jobs
}
