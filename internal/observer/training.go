package observer

import (
	"bufio"
	"encoding/binary"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/talonreach/dominion/internal/ids"
)

// TrainingSchemaVersion is bumped whenever TrainingFile's on-wire layout
// changes incompatibly; consumers must check it before decoding.
const TrainingSchemaVersion uint16 = 1

// TrainingSample is one observer-tag's decision point: the tick it was
// offered, the commands it could have issued, and the one it chose.
type TrainingSample struct {
	Tick              uint64
	ObserverTag       ids.Tag
	AvailableCommands []string
	ChosenIndex       int32 // -1 if no command was issued (pass)
	ChosenCommand     string
}

// TrainingBatch groups samples by in-game calendar year, matching how the
// teacher's durable-storage layer batches records per simulated period
// rather than per wall-clock flush.
type TrainingBatch struct {
	Year    int32
	Samples []TrainingSample
}

// TrainingFile is the schema-versioned packed-message container written to
// disk by TrainingObserver.Flush.
type TrainingFile struct {
	SchemaVersion uint16
	SessionID     uuid.UUID
	Batches       []TrainingBatch
}

// TrainingObserver accumulates TrainingSample records per in-game year and
// writes them out as a packed binary TrainingFile on Flush. It never issues
// commands itself (NeedsInputs is false) — recording is passive; whatever
// drove the recorded Command is expected to call RecordSample directly
// before the tick it's reporting on.
type TrainingObserver struct {
	sessionID uuid.UUID
	frequency uint32
	batches   map[int32]*TrainingBatch
}

// NewTrainingObserver returns a TrainingObserver notified every `frequency`
// ticks (0 or 1 means every tick).
func NewTrainingObserver(frequency uint32) *TrainingObserver {
	return &TrainingObserver{
		sessionID: uuid.New(),
		frequency: frequency,
		batches:   make(map[int32]*TrainingBatch),
	}
}

func (o *TrainingObserver) Name() string      { return "training" }
func (o *TrainingObserver) Frequency() uint32  { return o.frequency }
func (o *TrainingObserver) NeedsInputs() bool  { return false }

// Notify records the current tick's date as an (empty) batch placeholder if
// one doesn't already exist for the year; actual samples are appended via
// RecordSample by the driver that solicited the commands this tick applied.
func (o *TrainingObserver) Notify(snap Snapshot) error {
	year := snap.State.Date.Year
	if _, ok := o.batches[year]; !ok {
		o.batches[year] = &TrainingBatch{Year: year}
	}
	return nil
}

// RecordSample appends a sample to the batch for the given year, creating
// the batch if this is its first sample.
func (o *TrainingObserver) RecordSample(year int32, sample TrainingSample) {
	b, ok := o.batches[year]
	if !ok {
		b = &TrainingBatch{Year: year}
		o.batches[year] = b
	}
	b.Samples = append(b.Samples, sample)
}

// Flush writes every accumulated batch, sorted by year, as a packed
// TrainingFile to w.
func (o *TrainingObserver) Flush(w io.Writer) error {
	years := make([]int32, 0, len(o.batches))
	for y := range o.batches {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, TrainingSchemaVersion); err != nil {
		return err
	}
	sessionBytes, err := o.sessionID.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := bw.Write(sessionBytes); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(years))); err != nil {
		return err
	}

	for _, y := range years {
		batch := o.batches[y]
		if err := binary.Write(bw, binary.LittleEndian, y); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, uint32(len(batch.Samples))); err != nil {
			return err
		}
		for _, s := range batch.Samples {
			if err := writeSample(bw, s); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeSample(bw *bufio.Writer, s TrainingSample) error {
	if err := binary.Write(bw, binary.LittleEndian, s.Tick); err != nil {
		return err
	}
	if err := writeString(bw, string(s.ObserverTag)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(s.AvailableCommands))); err != nil {
		return err
	}
	for _, cmd := range s.AvailableCommands {
		if err := writeString(bw, cmd); err != nil {
			return err
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, s.ChosenIndex); err != nil {
		return err
	}
	return writeString(bw, s.ChosenCommand)
}

func writeString(bw *bufio.Writer, s string) error {
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := bw.WriteString(s)
	return err
}
