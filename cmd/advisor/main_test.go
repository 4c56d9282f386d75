package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/attrition-advisor/internal/classifier"
)

func writeConfig(t *testing.T, modelPath string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "app:\n  mode: test\n  log_level: error\nmodel:\n  path: " + modelPath + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_CheckModel(t *testing.T) {
	modelPath, err := filepath.Abs(filepath.Join("..", "..", "models", "attrition_model.json"))
	require.NoError(t, err)

	var out bytes.Buffer
	err = run([]string{"-config", writeConfig(t, modelPath), "-check-model"}, &out)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "name:     attrition-logreg")
	assert.Contains(t, out.String(), "kind:     logistic_regression")
	assert.Contains(t, out.String(), "features: Age, MonthlyIncome, OverTime, JobSatisfaction, WorkLifeBalance, YearsAtCompany")
	assert.Contains(t, out.String(), "source:   "+modelPath)
}

func TestRun_MissingModelFailsBeforeServing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.json")

	var out bytes.Buffer
	err := run([]string{"-config", writeConfig(t, missing)}, &out)

	require.Error(t, err)
	assert.ErrorIs(t, err, classifier.ErrArtifactNotFound)
	assert.Contains(t, err.Error(), "failed to load classifier")
	assert.Empty(t, out.String())
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  port: 0\n"), 0o600))

	err := run([]string{"-config", path}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestRun_UnknownFlag(t *testing.T) {
	err := run([]string{"-no-such-flag"}, &bytes.Buffer{})

	assert.Error(t, err)
}
