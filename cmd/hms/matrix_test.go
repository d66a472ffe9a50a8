package main

import (
	"bytes"
	"strings"
	"testing"

	"hms-system/internal/risk"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintMatrix(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printMatrix(&buf, risk.NewMatrix(), risk.DefaultLabels(), false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 6)

	// likelihood 5 is printed first, its last cell is the maximum score
	assert.True(t, strings.HasPrefix(lines[1], "5 "))
	assert.Contains(t, lines[1], "25")
	assert.True(t, strings.HasPrefix(lines[5], "1 "))
	assert.Contains(t, buf.String(), "Kritisk")
}

func TestPrintMatrix_Counts(t *testing.T) {
	color.NoColor = true

	m := risk.NewMatrix()
	require.NoError(t, m.SetCount(4, 4, 3))

	var buf bytes.Buffer
	printMatrix(&buf, m, risk.DefaultLabels(), true)
	assert.Contains(t, buf.String(), "16 (3)")
}
