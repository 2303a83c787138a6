// package formatter renders playlist exports and reorder results to various
// formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"spotiflow/internal/models"
	"spotiflow/internal/shared"
	"spotiflow/internal/tasks"
)

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artist, Album, Duration
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to Markdown format
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Playlist.Name))

	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", export.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(export.Tracks)))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n\n", shared.VisibilityString(export.Playlist.Public)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range export.Tracks {
		duration := shared.FormatDuration(track.Duration)
		albumPart := ""
		if track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, albumPart, duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text format
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", export.Playlist.Name))
	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", export.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(export.Tracks)))

	for i, track := range export.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artist, track.Title))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of playlist metadata (without tracks)
func ToMetadataJSON(playlist models.Playlist) ([]byte, error) {
	return shared.MarshalJSON(playlist, true)
}

// ReorderToText renders a reorder result as plain text, showing each track's
// new position alongside its original one.
func ReorderToText(result *tasks.ReorderResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", result.SourcePlaylist.Playlist.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d (%d with features", result.TotalTracks, result.FeaturedCount))
	if len(result.MissingFeatures) > 0 {
		buf.WriteString(fmt.Sprintf(", %d appended without features", len(result.MissingFeatures)))
	}
	buf.WriteString(")\n\n")

	positions := originalPositions(result.SourcePlaylist)
	for i, track := range result.Ordered {
		marker := ""
		if missingFeatures(result, track.ID) {
			marker = " *"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s (was #%d)%s\n", i+1, track.Artist, track.Title, positions[track.ID], marker))
	}

	if len(result.MissingFeatures) > 0 {
		buf.WriteString("\n* no audio features available\n")
	}

	if result.CreatedPlaylist != nil {
		buf.WriteString(fmt.Sprintf("\nCreated playlist: %s (ID: %s)\n", result.CreatedPlaylist.Name, result.CreatedPlaylist.ID))
	}

	return buf.Bytes()
}

// ReorderToMarkdown renders a reorder result as a Markdown comparison table.
func ReorderToMarkdown(result *tasks.ReorderResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", result.SourcePlaylist.Playlist.Name))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", result.TotalTracks))
	buf.WriteString(fmt.Sprintf("**With features**: %d\n\n", result.FeaturedCount))

	buf.WriteString("| # | Was | Artist | Title |\n")
	buf.WriteString("|---|-----|--------|-------|\n")

	positions := originalPositions(result.SourcePlaylist)
	for i, track := range result.Ordered {
		buf.WriteString(fmt.Sprintf("| %d | %d | %s | %s |\n", i+1, positions[track.ID], track.Artist, track.Title))
	}

	if len(result.MissingFeatures) > 0 {
		buf.WriteString(fmt.Sprintf("\nTracks without audio features (appended): %d\n", len(result.MissingFeatures)))
	}

	return buf.Bytes()
}

// ReorderToCSV renders a reorder result as CSV with columns: Position, OriginalPosition, ID, Title, Artist
func ReorderToCSV(result *tasks.ReorderResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Position", "OriginalPosition", "ID", "Title", "Artist"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	positions := originalPositions(result.SourcePlaylist)
	for i, track := range result.Ordered {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(positions[track.ID]),
			track.ID,
			track.Title,
			track.Artist,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// originalPositions maps track ids to their 1-based position in the source
// playlist.
func originalPositions(export *models.PlaylistExport) map[string]int {
	positions := make(map[string]int, len(export.Tracks))
	for i, track := range export.Tracks {
		positions[track.ID] = i + 1
	}
	return positions
}

func missingFeatures(result *tasks.ReorderResult, id string) bool {
	for _, missing := range result.MissingFeatures {
		if missing == id {
			return true
		}
	}
	return false
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	TracksFile   string
	MetadataFile string
}

// WriteCSVExport exports a playlist to CSV format with accompanying metadata JSON file.
//
// Defaults to playlist ID as the base filename & creates {base}_tracks.csv and {base}_metadata.json
func WriteCSVExport(export *models.PlaylistExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = export.Playlist.ID
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	tracksFile := baseFilepath + "_tracks.csv"
	if err := os.WriteFile(tracksFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export.Playlist)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		TracksFile:   tracksFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteTextExport exports a playlist to plain text format.
//
// Defaults to {playlist.ID}_tracks.txt as the filename.
func WriteTextExport(export *models.PlaylistExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_tracks.txt", export.Playlist.ID)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
