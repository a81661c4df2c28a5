// Package option holds the functional option convention used across the module.
package option

// Option changes a Config, such as a query's concurrency or a lookup's comparer.
type Option[Config any] interface {
	Configure(*Config)
}

// Func turns a function into an Option.
type Func[Config any] func(*Config)

func (fn Func[Config]) Configure(c *Config) { fn(c) }

// Use builds a Config from the options.
// A Config with an Init method gets its defaults from it first.
// Nil options are skipped.
func Use[Config any, Opt Option[Config]](opts []Opt) Config {
	var c Config
	if init, ok := any(&c).(initer); ok {
		init.Init()
	}
	for _, opt := range opts {
		if any(opt) == nil {
			continue
		}
		opt.Configure(&c)
	}
	return c
}

type initer interface {
	Init()
}
