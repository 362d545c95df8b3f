package link

import (
	"go.uber.org/fx"
	"proxy-normalizer/internal/interfaces"
)

var Module = fx.Options(
	fx.Provide(NewParser),
	fx.Provide(func(p *Parser) interfaces.LinkParser { return p }),
)
