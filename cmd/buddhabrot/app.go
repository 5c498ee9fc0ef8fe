package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/archive"
	"buddhabrot/internal/config"
	"buddhabrot/internal/fractal"
	"buddhabrot/internal/output"
	"buddhabrot/internal/snapshot"
)

var ErrNoSnapshot = errors.New("no snapshot file given")

// App 串起计算、快照、出图和归档
type App struct {
	cfg      *config.Config
	runID    RunID
	engine   *fractal.Engine
	tone     *fractal.ToneMapper
	archiver archive.Archiver
}

func newApp(c *config.Config, runID RunID, engine *fractal.Engine, tone *fractal.ToneMapper,
	archiver archive.Archiver) *App {
	return &App{
		cfg:      c,
		runID:    runID,
		engine:   engine,
		tone:     tone,
		archiver: archiver,
	}
}

// Render 计算全局直方图并写出图片
func (a *App) Render(ctx context.Context) error {
	started := time.Now()
	p := a.engine.Params()
	logx.Infow("render started",
		logx.Field("run", string(a.runID)),
		logx.Field("partitions", a.engine.Partitions()),
		logx.Field("resolution", p.Resolution),
		logx.Field("maxIterations", p.MaxIterations),
		logx.Field("segments", p.Segments),
		logx.Field("adaptive", p.Adaptive))

	res, err := a.engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("compute histogram: %w", err)
	}

	if a.cfg.Snapshot != "" {
		if err := snapshot.WriteFile(a.cfg.Snapshot, snapshot.NewDocument(p, res)); err != nil {
			return err
		}
		logx.Infow("snapshot saved", logx.Field("path", a.cfg.Snapshot))
	}

	raster := a.tone.Render(res.Histogram)
	if err := a.write(raster); err != nil {
		return err
	}

	elapsed := time.Since(started)
	logx.WithDuration(elapsed).Infow("render finished",
		logx.Field("samples", res.Stats.Samples),
		logx.Field("escaped", res.Stats.Escaped),
		logx.Field("cycles", res.Stats.Cycles),
		logx.Field("exhausted", res.Stats.Exhausted),
		logx.Field("pixels", res.Histogram.Len()),
		logx.Field("output", a.cfg.Output.Path))

	rec := archive.NewRecord(string(a.runID), p, res, raster, started, elapsed, a.cfg.Output.Path)
	if err := a.archiver.Archive(ctx, rec); err != nil {
		// 图片已经写出，归档失败只记录
		logx.Errorw("archive run", logx.Field("error", err.Error()))
	}
	return nil
}

// Tonemap 从快照重新出图，path 为空时使用配置里的 Snapshot
func (a *App) Tonemap(path string) error {
	if path == "" {
		path = a.cfg.Snapshot
	}
	if path == "" {
		return ErrNoSnapshot
	}

	doc, err := snapshot.ReadFile(path)
	if err != nil {
		return err
	}
	h, err := doc.Histogram()
	if err != nil {
		return err
	}
	if err := a.write(a.tone.Render(h)); err != nil {
		return err
	}
	logx.Infow("tonemap finished",
		logx.Field("snapshot", path),
		logx.Field("pixels", h.Len()),
		logx.Field("output", a.cfg.Output.Path))
	return nil
}

func (a *App) write(r *fractal.Raster) error {
	format, err := output.ParseFormat(a.cfg.Output.Format, a.cfg.Output.Path)
	if err != nil {
		return err
	}
	return output.WriteFile(a.cfg.Output.Path, r, format)
}
