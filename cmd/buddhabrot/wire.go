//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"buddhabrot/internal/config"
)

// initApp 是 wire 的 Injector 声明，函数体由 wire_gen.go 替换
func initApp(ctx context.Context, c *config.Config) (*App, func(), error) {
	wire.Build(
		provideRunID,
		provideParams,
		provideObserver,
		provideEngine,
		provideToneMapper,
		provideArchiver,
		newApp,
	)
	return nil, nil, nil
}
