package main

import (
	"bytes"
	"testing"

	"github.com/programme-lv/contactform/leads"
	"github.com/stretchr/testify/assert"
)

func runExportCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newExportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCmdRejectsNonXlsxPath(t *testing.T) {
	_, err := runExportCmd(t, "--bucket", "leads", "--region", "eu-central-1", "--out", "leads.csv")
	assert.ErrorIs(t, err, leads.ErrInvalidRequest)
}

func TestExportCmdRejectsYearWithoutMonth(t *testing.T) {
	_, err := runExportCmd(t, "--bucket", "leads", "--year", "2024")
	assert.ErrorIs(t, err, leads.ErrInvalidRequest)
	assert.ErrorContains(t, err, "both year and month")
}

func TestExportCmdRejectsMonthOutOfRange(t *testing.T) {
	_, err := runExportCmd(t, "--bucket", "leads", "--year", "2024", "--month", "13")
	assert.ErrorIs(t, err, leads.ErrInvalidRequest)
}
