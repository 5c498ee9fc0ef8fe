// Package archive 把每次渲染的参数与统计记录到 MongoDB。
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"buddhabrot/internal/fractal"
)

var ErrNoURI = errors.New("archive: mongo uri is required")

// MongoConf 配置运行记录的存储位置，Uri 为空表示不启用
type MongoConf struct {
	Uri        string        `json:",optional"`
	Database   string        `json:",default=buddhabrot"`
	Collection string        `json:",default=runs"`
	Timeout    time.Duration `json:",default=5s"`
}

func (c MongoConf) Enabled() bool {
	return c.Uri != ""
}

// ParamsDoc 是 fractal.Params 的存储形式
type ParamsDoc struct {
	Min            float64 `bson:"min"`
	Max            float64 `bson:"max"`
	Resolution     int     `bson:"resolution"`
	Step           float64 `bson:"step"`
	MaxIterations  int     `bson:"max_iterations"`
	CyclePrecision float64 `bson:"cycle_precision"`
	Segments       int     `bson:"segments"`
	Adaptive       bool    `bson:"adaptive"`
}

// StatsDoc 是 fractal.Stats 的存储形式
type StatsDoc struct {
	Samples    int64 `bson:"samples"`
	Escaped    int64 `bson:"escaped"`
	Cycles     int64 `bson:"cycles"`
	Exhausted  int64 `bson:"exhausted"`
	Partitions int   `bson:"partitions"`
	Segments   int   `bson:"segments"`
}

// Record 是一次运行的记录
type Record struct {
	RunID      string    `bson:"run_id"`
	StartedAt  time.Time `bson:"started_at"`
	DurationMs int64     `bson:"duration_ms"`
	Params     ParamsDoc `bson:"params"`
	Stats      StatsDoc  `bson:"stats"`
	Pixels     int       `bson:"pixels"`
	NonZero    int       `bson:"non_zero"`
	BitDepth   int       `bson:"bit_depth"`
	Output     string    `bson:"output"`
}

// NewRecord 汇总一次运行
func NewRecord(runID string, p fractal.Params, res *fractal.Result, raster *fractal.Raster,
	started time.Time, elapsed time.Duration, output string) Record {
	return Record{
		RunID:      runID,
		StartedAt:  started.UTC(),
		DurationMs: elapsed.Milliseconds(),
		Params: ParamsDoc{
			Min:            p.Min,
			Max:            p.Max,
			Resolution:     p.Resolution,
			Step:           p.Step,
			MaxIterations:  p.MaxIterations,
			CyclePrecision: p.CyclePrecision,
			Segments:       p.Segments,
			Adaptive:       p.Adaptive,
		},
		Stats: StatsDoc{
			Samples:    int64(res.Stats.Samples),
			Escaped:    int64(res.Stats.Escaped),
			Cycles:     int64(res.Stats.Cycles),
			Exhausted:  int64(res.Stats.Exhausted),
			Partitions: res.Stats.Partitions,
			Segments:   res.Stats.Segments,
		},
		Pixels:   res.Histogram.Len(),
		NonZero:  raster.NonZero(),
		BitDepth: raster.BitDepth,
		Output:   output,
	}
}

// Archiver 保存运行记录
type Archiver interface {
	Archive(ctx context.Context, rec Record) error
	Close(ctx context.Context) error
}

// Nop 不保存任何记录
type Nop struct{}

func (Nop) Archive(context.Context, Record) error { return nil }
func (Nop) Close(context.Context) error           { return nil }

// inserter 是 *mongo.Collection 中用到的部分
type inserter interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// Mongo 把记录写入一个集合
type Mongo struct {
	client  *mongo.Client
	coll    inserter
	timeout time.Duration
}

// NewMongo 连接 MongoDB
func NewMongo(ctx context.Context, c MongoConf) (*Mongo, error) {
	if !c.Enabled() {
		return nil, ErrNoURI
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.Uri).SetTimeout(c.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &Mongo{
		client:  client,
		coll:    client.Database(c.Database).Collection(c.Collection),
		timeout: c.Timeout,
	}, nil
}

func (m *Mongo) Archive(ctx context.Context, rec Record) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	if _, err := m.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("archive run %s: %w", rec.RunID, err)
	}
	return nil
}

func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
