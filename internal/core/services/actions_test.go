package services

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/omnibar/internal/core/domain"
)

func TestResultActionService_Open(t *testing.T) {
	svc := NewResultActionService()

	var captured *exec.Cmd
	svc.run = func(cmd *exec.Cmd) error {
		captured = cmd
		return nil
	}

	result := &domain.Result{
		Item: domain.NewBookmark("b1", "GitHub", "https://github.com/", nil, time.Time{}),
	}
	require.NoError(t, svc.Open(context.Background(), result))
	require.NotNil(t, captured)
	assert.Contains(t, captured.Args, "https://github.com", "opens the original URL, trailing slash stripped")
}

func TestResultActionService_OpenNilResult(t *testing.T) {
	svc := NewResultActionService()

	err := svc.Open(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResultActionService_OpenSyntheticEntry(t *testing.T) {
	svc := NewResultActionService()

	var captured *exec.Cmd
	svc.run = func(cmd *exec.Cmd) error {
		captured = cmd
		return nil
	}

	entry := domain.NewSearchEngineEntry(domain.SearchEngine{
		Name:        "Google",
		URLTemplate: "https://www.google.com/search?q=$s",
	}, "go testing")
	require.NoError(t, svc.Open(context.Background(), &domain.Result{Item: entry}))
	require.NotNil(t, captured)
	assert.Contains(t, captured.Args, "https://www.google.com/search?q=go+testing")
}

func TestResultActionService_CopyURL(t *testing.T) {
	if runtime.GOOS == "linux" {
		// The clipboard command lookup needs xclip or xsel installed;
		// the command itself is never executed.
		if _, err := exec.LookPath("xclip"); err != nil {
			if _, err := exec.LookPath("xsel"); err != nil {
				t.Skip("no clipboard utility installed")
			}
		}
	}

	svc := NewResultActionService()

	var captured *exec.Cmd
	svc.run = func(cmd *exec.Cmd) error {
		captured = cmd
		return nil
	}

	result := &domain.Result{
		Item: domain.NewBookmark("b1", "GitHub", "https://github.com", nil, time.Time{}),
	}
	require.NoError(t, svc.CopyURL(context.Background(), result))
	require.NotNil(t, captured)
	assert.NotNil(t, captured.Stdin)
}

func TestResultActionService_CopyURLNilResult(t *testing.T) {
	svc := NewResultActionService()

	err := svc.CopyURL(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
