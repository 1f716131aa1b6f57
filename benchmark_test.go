package djinject_test

import (
	"testing"

	"github.com/langium/djinject"
)

func BenchmarkInject(b *testing.B) {
	module := djinject.NewModule(
		djinject.Supply("a", 1),
		djinject.Group("g",
			djinject.Supply("b", 2),
			djinject.Supply("c", 3),
		),
	)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := djinject.Inject(module); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkContainerGet_Cached(b *testing.B) {
	container, err := djinject.Inject(djinject.NewModule(
		djinject.Supply("a", 1),
	))
	if err != nil {
		b.Fatal(err)
	}
	if _, err := container.Get("a"); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := container.Get("a"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkResolveTyped(b *testing.B) {
	container, err := djinject.Inject(djinject.NewModule(
		djinject.Supply("a", 1),
	))
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := djinject.Resolve[int](container, "a"); err != nil {
			b.Fatal(err)
		}
	}
}
