package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// AgentConfig describes one agent taking part in an experiment.
type AgentConfig struct {
	ID         int
	Agent      string
	Depth      int
	Goroutines int
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Summary aggregates the games of one run.
type Summary struct {
	Games     int
	MeanScore float64
	BestScore int
	MaxTiles  map[int]int // Max tile reached -> number of games
}

func Summarize(records []GameRecord) Summary {
	summary := Summary{Games: len(records), MaxTiles: map[int]int{}}
	if len(records) == 0 {
		return summary
	}
	scores := make([]float64, len(records))
	for i, record := range records {
		scores[i] = float64(record.Score)
		summary.MaxTiles[record.MaxTile]++
	}
	summary.MeanScore = floats.Sum(scores) / float64(len(scores))
	summary.BestScore = int(floats.Max(scores))
	return summary
}

type Writer struct {
	baseDir string
	runID   string
}

// NewWriter creates root/name/<timestamp>_<run id> for the files of one run.
func NewWriter(root, name string) (*Writer, error) {
	runID := uuid.NewString()
	timestamp := time.Now().UTC().Format("2006-01-02T15-04-05Z")
	baseDir := filepath.Join(root, name, timestamp+"_"+runID[:8])
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
		runID:   runID,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) RunID() string {
	return w.runID
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Agent,
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Goroutines),
		})
	}
	header := []string{"id", "agent", "depth", "goroutines"}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			w.runID,
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			record.GameMetric.Agent,
			strconv.Itoa(record.Score),
			strconv.Itoa(record.MaxTile),
			strconv.Itoa(record.Moves),
			strconv.Itoa(record.Fallbacks),
			strconv.FormatBool(record.GameOver),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	header := []string{"run", "id", "agent_config", "agent", "score", "max_tile", "moves", "fallbacks", "game_over", "start_time", "end_time", "duration"}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Direction,
			strconv.Itoa(record.ScoreDelta),
			strconv.Itoa(record.Goroutines),
			strconv.Itoa(record.Depth),
			record.SearchMetric.Duration.String(),
			strconv.FormatInt(record.Nodes, 10),
			strconv.FormatInt(record.Leaves, 10),
		})
	}
	header := []string{"game", "step", "direction", "score_delta", "goroutines", "depth", "duration", "nodes", "leaves"}
	return w.writeCSV("move_records.csv", header, rows)
}

// WriteEvaluationLog writes one line per game followed by a summary of the
// scores and the max tile distribution.
func (w *Writer) WriteEvaluationLog(records []GameRecord) error {
	path := filepath.Join(w.baseDir, "evaluation.log")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create evaluation log: %w", err)
	}
	defer f.Close()

	for _, record := range records {
		_, err = fmt.Fprintf(f, "game %d: agent=%s score=%d max_tile=%d moves=%d\n",
			record.ID, record.GameMetric.Agent, record.Score, record.MaxTile, record.Moves)
		if err != nil {
			return fmt.Errorf("failed to write evaluation log: %w", err)
		}
	}

	summary := Summarize(records)
	_, err = fmt.Fprintf(f, "summary: run=%s games=%d mean_score=%.1f best_score=%d\n",
		w.runID, summary.Games, summary.MeanScore, summary.BestScore)
	if err != nil {
		return fmt.Errorf("failed to write evaluation summary: %w", err)
	}

	tiles := make([]int, 0, len(summary.MaxTiles))
	for tile := range summary.MaxTiles {
		tiles = append(tiles, tile)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiles)))
	for _, tile := range tiles {
		_, err = fmt.Fprintf(f, "max_tile %d: %d\n", tile, summary.MaxTiles[tile])
		if err != nil {
			return fmt.Errorf("failed to write evaluation summary: %w", err)
		}
	}
	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
