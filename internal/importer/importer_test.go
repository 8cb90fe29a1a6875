package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/ganhos_semana.csv")
	require.NoError(t, err)

	p := &GenericParser{}
	earnings, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, earnings, 5)

	first := earnings[0]
	assert.Equal(t, "iFood", first.Platform)
	assert.Equal(t, "182.50", first.Amount.StringFixed(2))
	assert.Equal(t, "almoco e jantar", first.Notes)
	assert.Equal(t, 2025, first.Date.Year())
	assert.Equal(t, 8, int(first.Date.Month()))
	assert.Equal(t, 4, first.Date.Day())

	assert.Equal(t, "Rappi", earnings[1].Platform)
	assert.Empty(t, earnings[1].Notes)
}

func TestGenericParser_EmptyFile(t *testing.T) {
	p := &GenericParser{}
	earnings, err := p.Parse(strings.NewReader("data,plataforma,valor,observacoes\n"))
	require.NoError(t, err)
	assert.Nil(t, earnings)
}

func TestGenericParser_BadDate(t *testing.T) {
	csv := "data,plataforma,valor,observacoes\nNOTADATE,iFood,10.00,\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestGenericParser_BadAmount(t *testing.T) {
	csv := "data,plataforma,valor,observacoes\n2025-08-04,iFood,NOTANUMBER,\n"
	p := &GenericParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestIfoodParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/ifood_repasse.csv")
	require.NoError(t, err)

	p := &IfoodParser{}
	earnings, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Len(t, earnings, 4)

	first := earnings[0]
	assert.Equal(t, "iFood", first.Platform)
	assert.Equal(t, "1234.56", first.Amount.StringFixed(2))
	assert.Equal(t, "Repasse semanal", first.Notes)
	assert.Equal(t, 4, first.Date.Day())
	assert.Equal(t, 8, int(first.Date.Month()))
	assert.Equal(t, 2025, first.Date.Year())

	// The taxa row is negative; callers skip non-credits.
	assert.True(t, earnings[2].Amount.IsNegative())
	assert.Equal(t, "-19.90", earnings[2].Amount.StringFixed(2))
}

func TestIfoodParser_BrazilianAmounts(t *testing.T) {
	cases := map[string]string{
		"1.234,56":    "1234.56",
		"987,00":      "987.00",
		"R$ 1.050,25": "1050.25",
		"-19,90":      "-19.90",
	}
	for in, want := range cases {
		got, err := parseBrazilianAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.StringFixed(2), in)
	}
}

func TestIfoodParser_BadDate(t *testing.T) {
	csv := "data;descricao;valor\n2025-08-04;Repasse;100,00\n"
	p := &IfoodParser{}
	_, err := p.Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing date")
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&GenericParser{})
	p := r.Get("generic")
	require.NotNil(t, p)
	assert.Equal(t, "generic", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&IfoodParser{})
	assert.NotNil(t, r.Get("iFood"))
	assert.NotNil(t, r.Get("IFOOD"))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("ifood"))
	assert.Len(t, r.Formats(), 2)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "ganhos.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "ganhos.csv", files[0].Name)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	processedDir := filepath.Join(importDir, "processed")
	require.NoError(t, os.MkdirAll(processedDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processedDir, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "ganhos.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "ganhos.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(importDir, "ganhos.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "ganhos.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "a.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "a.csv")
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, "import", "processed"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
