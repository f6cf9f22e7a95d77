package mixer

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tallyframe/tallyframe/lib/charts"
	"github.com/tallyframe/tallyframe/lib/config"
	"github.com/tallyframe/tallyframe/lib/document"
	"github.com/tallyframe/tallyframe/lib/theatre"
)

// FrequencyTable is the id of the table scene built next to a dataset
// histogram.
const FrequencyTable = "frequency"

// ReadDocument loads a JSON or YAML document from disk.
func ReadDocument(path string) (*document.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}
	doc, err := document.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return doc, nil
}

// Reload restores doc into the theatre and resumes playback if it was
// running. It must run on the frame goroutine.
func Reload(t *theatre.Theatre, doc *document.Document) error {
	wasPlaying := t.Chart.Timeline.IsPlaying()
	if err := t.Restore(doc); err != nil {
		return err
	}
	if wasPlaying {
		t.Play()
	}
	return nil
}

// BuildDataset replaces every scene with a histogram of the configured
// sample, plus a frequency table when asked for.
func BuildDataset(t *theatre.Theatre, d *config.DatasetCfg) error {
	values, err := d.Source.Values()
	if err != nil {
		return err
	}
	t.Reset()
	classes, err := charts.BuildHistogram(t, values, charts.HistogramOptions{
		Classes: d.Classes,
		Title:   d.Title,
		XLabel:  d.XLabel,
		YLabel:  d.YLabel,
	})
	if err != nil {
		return err
	}
	if d.Table {
		if _, err := charts.BuildTable(t, FrequencyTable, FrequencyTable, classes, charts.TableOptions{}); err != nil {
			return err
		}
	}
	slog.Info("built dataset scene",
		slog.String("module", "mixer"),
		slog.Int("values", len(values)),
		slog.Int("classes", len(classes)),
		slog.Bool("table", d.Table),
	)
	return nil
}

// Setup fills the theatre from cfg and applies the playback settings. It
// must run before Run or on the frame goroutine.
func Setup(t *theatre.Theatre, cfg *config.Config) error {
	if cfg.Document != "" {
		doc, err := ReadDocument(cfg.Document.String())
		if err != nil {
			return err
		}
		if err := t.Restore(doc); err != nil {
			return err
		}
	} else if cfg.Dataset != nil {
		if err := BuildDataset(t, cfg.Dataset); err != nil {
			return fmt.Errorf("could not build dataset scene: %w", err)
		}
	}

	if err := t.SetSpeed(cfg.Playback.Speed); err != nil {
		return err
	}
	t.SetLoop(cfg.Playback.Loop)
	if cfg.Playback.Autoplay {
		t.Play()
	}
	return nil
}
