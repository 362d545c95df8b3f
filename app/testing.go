package app

import (
	"context"
	"testing"
	"time"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"proxy-normalizer/internal/common"
)

// TestApplication runs the full application graph under fxtest
type TestApplication struct {
	tb      testing.TB
	testApp *fxtest.App
	options *common.ServiceOptions
	extra   []fx.Option
}

func NewTestApplication(tb testing.TB, opts ...common.Option) *TestApplication {
	return &TestApplication{
		tb:      tb,
		options: buildOptions(opts),
	}
}

func (ta *TestApplication) WithOption(opt fx.Option) *TestApplication {
	ta.extra = append(ta.extra, opt)
	return ta
}

func (ta *TestApplication) Start(ctx context.Context) error {
	testOptions := []fx.Option{modules(ta.options)}

	// Add user-provided options
	testOptions = append(testOptions, ta.extra...)

	// Configure test app
	testOptions = append(testOptions,
		fx.StartTimeout(10*time.Second),
		fx.StopTimeout(10*time.Second),
	)

	ta.testApp = fxtest.New(ta.tb, testOptions...)

	return ta.testApp.Start(ctx)
}

func (ta *TestApplication) Wait() <-chan fx.ShutdownSignal {
	return ta.testApp.Wait()
}

func (ta *TestApplication) Stop(ctx context.Context) error {
	if ta.testApp != nil {
		return ta.testApp.Stop(ctx)
	}
	return nil
}
