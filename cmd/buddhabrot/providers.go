package main

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/archive"
	"buddhabrot/internal/config"
	"buddhabrot/internal/fractal"
	"buddhabrot/internal/progress"
)

// RunID 标识一次运行，用作 Kafka 消息 key 和归档记录 id
type RunID string

func provideRunID(c *config.Config) RunID {
	if c.Kafka.RunID != "" {
		return RunID(c.Kafka.RunID)
	}
	return RunID(time.Now().UTC().Format("20060102T150405.000"))
}

func provideParams(c *config.Config) (fractal.Params, error) {
	p := c.Params()
	return p, p.Validate()
}

func provideObserver(c *config.Config, runID RunID) (fractal.Observer, func(), error) {
	observers := []fractal.Observer{progress.NewLogObserver(c.ProgressEvery)}
	cleanup := func() {}

	if c.Kafka.Enabled() {
		kc := c.Kafka
		kc.RunID = string(runID)
		ko, err := progress.NewKafkaObserver(kc)
		if err != nil {
			return nil, nil, err
		}
		observers = append(observers, ko)
		cleanup = func() {
			if err := ko.Close(); err != nil {
				logx.Errorw("close kafka writer", logx.Field("error", err.Error()))
			}
		}
	}
	return progress.NewMulti(observers...), cleanup, nil
}

func provideEngine(c *config.Config, p fractal.Params, obs fractal.Observer) (*fractal.Engine, error) {
	scheduler, err := fractal.ParseScheduler(c.Scheduler)
	if err != nil {
		return nil, err
	}
	return fractal.NewEngine(p,
		fractal.WithWorkers(c.Workers),
		fractal.WithScheduler(scheduler),
		fractal.WithObserver(obs)), nil
}

func provideToneMapper(c *config.Config) (*fractal.ToneMapper, error) {
	return c.ToneMapper()
}

func provideArchiver(ctx context.Context, c *config.Config) (archive.Archiver, func(), error) {
	if !c.Mongo.Enabled() {
		return archive.Nop{}, func() {}, nil
	}
	m, err := archive.NewMongo(ctx, c.Mongo)
	if err != nil {
		return nil, nil, err
	}
	return m, func() {
		if err := m.Close(context.Background()); err != nil {
			logx.Errorw("close mongo client", logx.Field("error", err.Error()))
		}
	}, nil
}
