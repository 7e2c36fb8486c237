package calendar

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Tables holds the ordered keyword sets the classifier scans. Keywords
// are matched as lowercase substrings of the event description.
type Tables struct {
	Assessment []string `yaml:"assessment"`
	JointLeave []string `yaml:"joint_leave"`
	Break      []string `yaml:"break"`
	National   []string `yaml:"national"`
}

// DefaultTables returns the built-in keyword sets. The terms follow the
// vocabulary of Indonesian school calendars.
func DefaultTables() Tables {
	return Tables{
		Assessment: []string{
			"sumatif",
			"asesmen",
			"penilaian",
			"ujian",
			"sts",
			"sas",
			"pts",
			"pas",
		},
		JointLeave: []string{
			"cuti bersama",
		},
		Break: []string{
			"libur semester",
			"libur akhir",
			"libur kenaikan kelas",
			"jeda tengah semester",
			"jeda antar",
		},
		National: []string{
			"tahun baru",
			"idul fitri",
			"idul adha",
			"hari raya",
			"natal",
			"nyepi",
			"waisak",
			"imlek",
			"maulid",
			"isra",
			"mikraj",
			"kemerdekaan",
			"pancasila",
			"kartini",
			"buruh",
			"wafat isa",
			"kenaikan isa",
		},
	}
}

// LoadTables reads keyword overrides from a YAML file and merges them
// over the defaults; sections left empty in the file keep the built-in
// terms. An empty path returns the defaults unchanged.
func LoadTables(path string) (Tables, error) {
	tables := DefaultTables()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading keyword tables: %w", err)
	}

	var override Tables
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Tables{}, fmt.Errorf("parsing keyword tables %s: %w", path, err)
	}

	if len(override.Assessment) > 0 {
		tables.Assessment = override.Assessment
	}
	if len(override.JointLeave) > 0 {
		tables.JointLeave = override.JointLeave
	}
	if len(override.Break) > 0 {
		tables.Break = override.Break
	}
	if len(override.National) > 0 {
		tables.National = override.National
	}

	slog.Info("keyword tables loaded", "path", path)
	return tables, nil
}
