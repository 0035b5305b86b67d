package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/floatplace/pkg/cache"
)

func TestClearDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	count, err := clearDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("clearDir(missing) error: %v", err)
	}
	if count != 0 {
		t.Errorf("clearDir(missing) = %d, want 0", count)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"a", "b", "c"} {
		if err := fc.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatal(err)
		}
	}

	count, err = clearDir(ctx, dir)
	if err != nil {
		t.Fatalf("clearDir() error: %v", err)
	}
	if count != 3 {
		t.Errorf("clearDir() = %d, want 3", count)
	}
	if _, hit, _ := fc.Get(ctx, "a"); hit {
		t.Error("entry survived clear")
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"cache", "path"}, filepath.Join(xdg, appName)},
		{[]string{"cache", "clear"}, "Cache is empty"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			c := New(&bytes.Buffer{}, LogInfo)
			c.Out = &out

			root := c.RootCommand()
			root.SetArgs(tt.args)
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute() error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
