package spi_test

import (
	"fmt"

	"github.com/whyoleg/sweet-spi/spi"
)

type Greeter interface {
	Greet() string
}

type english struct{}

func (english) Greet() string { return "Hello" }

type french struct{}

func (french) Greet() string { return "Bonjour" }

var GreeterService = spi.NewService[Greeter]("example.com/greet.Greeter")

// Example demonstrates declaring a service, registering providers and
// loading them.
func Example() {
	spi.MustRegister(&spi.StaticModule{
		ModuleName: "example.com/greet",
		Declares:   []string{GreeterService.Name()},
	})
	spi.MustRegister(&spi.StaticModule{
		ModuleName: "example.com/impl",
		Provides: map[string][]spi.Provider{
			GreeterService.Name(): {spi.Instance(english{}), spi.Instance(french{})},
		},
	})

	for _, g := range spi.MustLoad(GreeterService) {
		fmt.Println(g.Greet())
	}

	// The registry is frozen after the first load.
	err := spi.Register(&spi.StaticModule{ModuleName: "example.com/late"})
	fmt.Println(err)

	// Output:
	// Hello
	// Bonjour
	// registry: already initialized, no more modules can be registered
}
