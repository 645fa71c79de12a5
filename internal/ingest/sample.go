package ingest

import (
	_ "embed"

	"github.com/chamados/dashboard/internal/models"
)

// SampleName is the file name the bundled dataset is served and reported as.
const SampleName = "dados_da_planilha.csv"

//go:embed sample_chamados.csv
var sampleCSV []byte

// SampleCSV returns a copy of the bundled demo dataset.
func SampleCSV() []byte {
	return append([]byte(nil), sampleCSV...)
}

func SampleRecords() ([]models.RawRecord, error) {
	return DecodeCSV(sampleCSV)
}
