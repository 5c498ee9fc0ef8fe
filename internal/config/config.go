// Package config 定义渲染程序的配置，用 go-zero 的 conf 从 yaml/json 加载。
package config

import (
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"buddhabrot/internal/archive"
	"buddhabrot/internal/fractal"
	"buddhabrot/internal/output"
	"buddhabrot/internal/progress"
)

// DomainConf 是实轴与虚轴共用的采样区间
type DomainConf struct {
	Min float64 `json:",default=-2"`
	Max float64 `json:",default=2"`
}

// ToneConf 控制直方图到灰度的映射
type ToneConf struct {
	BitDepth int     `json:",default=8,options=[8,16]"`
	ClipRank int     `json:",default=3"`
	Gamma    float64 `json:",default=0.25"`
}

// OutputConf 是输出图片的位置，Format 为空时按扩展名推断
type OutputConf struct {
	Path   string `json:",default=output.png"`
	Format string `json:",optional,options=[png,tiff]"`
}

// GopsConf 控制 gops 诊断 agent
type GopsConf struct {
	Enabled bool   `json:",optional"`
	Addr    string `json:",optional"`
}

// Config 是全部配置
type Config struct {
	Domain         DomainConf
	Resolution     int     `json:",default=500"`
	Step           float64 `json:",default=0.01"`
	MaxIterations  int     `json:",default=1000"`
	CyclePrecision float64 `json:",default=4.5e18"`
	Segments       int     `json:",default=1"`
	// Workers 为 0 时使用 CPU 核数
	Workers   int    `json:",optional"`
	Adaptive  bool   `json:",optional"`
	Scheduler string `json:",default=errgroup,options=[errgroup,mapreduce]"`

	Tone   ToneConf
	Output OutputConf
	// Snapshot 非空时把全局直方图另存为 JSON
	Snapshot string `json:",optional"`
	// ProgressEvery 每完成多少个分区打一次进度日志
	ProgressEvery int `json:",default=50"`

	Log   logx.LogConf
	Kafka progress.KafkaConf
	Mongo archive.MongoConf
	Gops  GopsConf
}

// Params 转换为引擎参数
func (c Config) Params() fractal.Params {
	return fractal.Params{
		Min:            c.Domain.Min,
		Max:            c.Domain.Max,
		Resolution:     c.Resolution,
		Step:           c.Step,
		MaxIterations:  c.MaxIterations,
		CyclePrecision: c.CyclePrecision,
		Segments:       c.Segments,
		Adaptive:       c.Adaptive,
	}
}

// ToneMapper 按配置创建色调映射器
func (c Config) ToneMapper() (*fractal.ToneMapper, error) {
	return fractal.NewToneMapper(c.Tone.BitDepth,
		fractal.WithClipRank(c.Tone.ClipRank),
		fractal.WithGamma(c.Tone.Gamma))
}

// Validate 汇总所有不合法的配置项
func (c Config) Validate() error {
	var errs []error
	if err := c.Params().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := fractal.ParseScheduler(c.Scheduler); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ToneMapper(); err != nil {
		errs = append(errs, err)
	}
	if c.Tone.ClipRank < 1 {
		errs = append(errs, fmt.Errorf("config: clip rank must be positive: %d", c.Tone.ClipRank))
	}
	if !(c.Tone.Gamma > 0) {
		errs = append(errs, fmt.Errorf("config: gamma must be positive: %g", c.Tone.Gamma))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("config: workers must not be negative: %d", c.Workers))
	}
	if _, err := output.ParseFormat(c.Output.Format, c.Output.Path); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
