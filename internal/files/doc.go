// Package files provides file system discovery for the sales analytics
// pipeline.
//
// Discovery scans the data directory for ZIP archives and CSV files and
// resolves the four required dataset files by filename token. Token
// resolution is strict: a token matching zero files or more than one file is
// an error, so a run never silently picks an arbitrary candidate.
//
// Example usage:
//
//	discovery := files.NewDiscovery("data")
//
//	// Find archives to expand
//	archives, err := discovery.FindArchiveFiles(".")
//
//	// Resolve the dataset files after expansion
//	paths, err := discovery.LocateDatasets(".")
package files
