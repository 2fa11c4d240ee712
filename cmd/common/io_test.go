package common

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spendly/sms-extract/internal/logging"
	"spendly/sms-extract/internal/models"
	"spendly/sms-extract/internal/parsererror"
	"spendly/sms-extract/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backup = `<?xml version="1.0" encoding="UTF-8"?>
<smses count="2">
  <sms address="VM-HDFCBK" date="1767955800000" type="1" body="Rs.250.00 debited from A/c X1234 at SWIGGY" />
  <sms address="+15550100" date="1767955900000" type="2" body="see you at 8" />
</smses>`

func TestReadMessages(t *testing.T) {
	dir := t.TempDir()
	txtFile := filepath.Join(dir, "inbox.txt")
	xmlFile := filepath.Join(dir, "backup.xml")
	require.NoError(t, os.WriteFile(txtFile, []byte("Rs.100 debited\n\nRs.200 credited"), 0600))
	require.NoError(t, os.WriteFile(xmlFile, []byte(backup), 0600))

	tests := []struct {
		name      string
		in        Input
		wantTexts []string
		wantErr   string
	}{
		{
			name:      "text flag wins",
			in:        Input{Text: "Rs.5 debited", File: txtFile, Stdin: strings.NewReader("ignored")},
			wantTexts: []string{"Rs.5 debited"},
		},
		{
			name:      "text file",
			in:        Input{File: txtFile},
			wantTexts: []string{"Rs.100 debited\n\nRs.200 credited"},
		},
		{
			name:      "xml detected from extension",
			in:        Input{File: xmlFile},
			wantTexts: []string{"Rs.250.00 debited from A/c X1234 at SWIGGY"},
		},
		{
			name:      "stdin defaults to text",
			in:        Input{Stdin: strings.NewReader("Rs.9 credited")},
			wantTexts: []string{"Rs.9 credited"},
		},
		{
			name:      "stdin as xml",
			in:        Input{Stdin: strings.NewReader(backup), Source: models.SourceXML},
			wantTexts: []string{"Rs.250.00 debited from A/c X1234 at SWIGGY"},
		},
		{
			name:    "missing file",
			in:      Input{File: filepath.Join(dir, "nope.txt")},
			wantErr: "input file not found",
		},
		{
			name:    "unknown source",
			in:      Input{Text: "x", Source: "pdf"},
			wantErr: "unsupported input source",
		},
		{
			name:    "no input",
			in:      Input{},
			wantErr: "no input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := ReadMessages(tt.in, logging.NewDiscardLogger())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTexts, source.Texts(msgs))
		})
	}
}

func TestReadMessages_EmptyStdin(t *testing.T) {
	_, err := ReadMessages(Input{Stdin: strings.NewReader("  \n")}, logging.NewDiscardLogger())
	assert.ErrorIs(t, err, parsererror.ErrEmptyInput)
}

func TestOpenOutput(t *testing.T) {
	var stdout bytes.Buffer
	for _, path := range []string{"", "-"} {
		w, closeFn, err := OpenOutput(path, &stdout)
		require.NoError(t, err)
		assert.Same(t, &stdout, w)
		assert.NoError(t, closeFn())
	}

	path := filepath.Join(t.TempDir(), "nested", "out.json")
	w, closeFn, err := OpenOutput(path, &stdout)
	require.NoError(t, err)
	_, err = w.Write([]byte("[]"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
