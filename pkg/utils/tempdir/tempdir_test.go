package tempdir_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/roboto/pkg/utils/tempdir"
)

func TestWith_RemovesDirOnSuccess(t *testing.T) {
	ctx := context.Background()

	var captured string
	err := tempdir.With(ctx, "roboto-test-*", func(dir string) error {
		captured = dir

		st, err := os.Stat(dir)
		gt.NoError(t, err)
		gt.Value(t, st.IsDir()).Equal(true)
		gt.Value(t, st.Mode().Perm()).Equal(os.FileMode(0700))

		return os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0644)
	})
	gt.NoError(t, err)

	_, err = os.Stat(captured)
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestWith_RemovesDirOnError(t *testing.T) {
	ctx := context.Background()

	var captured string
	wantErr := errors.New("step failed")
	err := tempdir.With(ctx, "roboto-test-*", func(dir string) error {
		captured = dir
		return wantErr
	})
	gt.Value(t, errors.Is(err, wantErr)).Equal(true)

	_, err = os.Stat(captured)
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}

func TestWith_RemovesDirOnPanic(t *testing.T) {
	ctx := context.Background()

	var captured string
	func() {
		defer func() {
			gt.Value(t, recover()).NotNil()
		}()
		_ = tempdir.With(ctx, "roboto-test-*", func(dir string) error {
			captured = dir
			panic("boom")
		})
	}()

	_, err := os.Stat(captured)
	gt.Value(t, os.IsNotExist(err)).Equal(true)
}
