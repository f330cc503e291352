package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/domain/survey"
)

// Indicator columns used by the fixture, mirroring the real NFHS extract.
const (
	ColFemaleLiteracy    = "Population and Household Profile - Population (female) age 6 years and above who ever attended school (%)"
	ColSexRatio          = "Population and Household Profile - Sex ratio of the total population (females per 1000 males)"
	ColElectricity       = "Population and Household Profile - Households with electricity (%)"
	ColImprovedWater     = "Population and Household Profile - Households with an improved drinking-water source (%)"
	ColBirthRegistration = "Population and Household Profile - Children under age 5 years whose birth was registered (%)"
	ColSanitation        = "Population and Household Profile - Population living in households that use an improved sanitation facility (%)"
)

// SampleCSV is a small NFHS extract.  It contains:
//   - Kerala/NFHS-5/Total with every KPI populated;
//   - Bihar/NFHS-5/Total with a null sex ratio and an unparsable water cell;
//   - rows for NFHS-4 and for Urban/Rural areas;
//   - Goa/NFHS-5/Total with an empty birth-registration cell;
//   - Jammu & Kashmir/NFHS-5/Urban, a state name with an XML-special character;
//   - a row with an empty Area value.
const SampleCSV = `India/States/UTs,Survey,Area,` +
	`"` + ColFemaleLiteracy + `",` +
	`"` + ColSexRatio + `",` +
	`"` + ColElectricity + `",` +
	`"` + ColImprovedWater + `",` +
	`"` + ColBirthRegistration + `",` +
	`"` + ColSanitation + `"` + "\n" +
	"Kerala,NFHS-5,Total,96.2,1121,100.0,97.8,99.6,98.7\n" +
	"Bihar,NFHS-5,Total,64.3,NA,96.3,n.a.,89.3,49.4\n" +
	"Goa,NFHS-5,Total,89.61,1027,99.95,99.35,,96.1\n" +
	"Kerala,NFHS-5,Urban,96.5,1108,100.0,97.1,99.7,99.1\n" +
	"Kerala,NFHS-4,Total,95.4,1049,99.2,94.3,96.6,98.1\n" +
	"Bihar,NFHS-4,Total,56.9,1062,58.6,98.2,60.7,25.2\n" +
	"India,NFHS-5,Total,71.8,1020,96.8,95.9,89.1,70.2\n" +
	"Jammu & Kashmir,NFHS-5,Urban,85.9,948,99.3,97.1,94.6,89.8\n" +
	"Assam,NFHS-5,,78.2,1012,89.7,90.4,93.9,68.8\n"

// SampleDataset parses SampleCSV into a Dataset.
func SampleDataset(t testing.TB) *survey.Dataset {
	t.Helper()
	r := csv.NewReader(strings.NewReader(SampleCSV))
	records, err := r.ReadAll()
	require.NoError(t, err)
	ds, err := survey.NewDataset(records[0], records[1:])
	require.NoError(t, err)
	return ds
}

// WriteSampleCSV writes SampleCSV to a file under t.TempDir and returns its
// path.
func WriteSampleCSV(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "All India National Family Health Survey.csv")
	require.NoError(t, os.WriteFile(path, []byte(SampleCSV), 0o644))
	return path
}

//Personal.AI order the ending
