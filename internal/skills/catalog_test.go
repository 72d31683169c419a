package skills

import (
	"strings"
	"testing"
)

func TestShorthandsResolveToCatalogEntries(t *testing.T) {
	for short, full := range Shorthands {
		entry, ok := Catalog[full]
		if !ok {
			t.Errorf("shorthand %q maps to %q, which is not in the catalog", short, full)
			continue
		}
		if entry.Category != "pipeline" {
			t.Errorf("shorthand target %q is in category %q, want pipeline", full, entry.Category)
		}
	}
}

func TestCatalogCategoriesAreKnown(t *testing.T) {
	known := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		known[c] = true
	}
	for name, e := range Catalog {
		if !known[e.Category] {
			t.Errorf("skill %q has unknown category %q", name, e.Category)
		}
		if e.Name != name {
			t.Errorf("catalog key %q != entry name %q", name, e.Name)
		}
	}
}

func TestInstruction(t *testing.T) {
	got := Instruction("strategic-scout")
	if !strings.Contains(got, "strategic-scout skill") {
		t.Errorf("pipeline instruction = %q", got)
	}

	// Skills without a dedicated instruction get the generic line.
	got = Instruction("memory-garden")
	if got != "Run the memory-garden skill." {
		t.Errorf("fallback instruction = %q", got)
	}
}

func TestKnown(t *testing.T) {
	if !Known("retrospective") {
		t.Error("retrospective should be known")
	}
	if Known("does-not-exist") {
		t.Error("unknown skill reported as known")
	}
}

func TestList(t *testing.T) {
	t.Run("full catalog", func(t *testing.T) {
		out := List("")
		for _, cat := range Categories {
			if !strings.Contains(out, "**"+cat) {
				t.Errorf("listing missing category %q", cat)
			}
		}
		if !strings.Contains(out, "shorthand: /dojo scout|spec|tracks|commission|retro") {
			t.Error("pipeline shorthand label missing")
		}
		if !strings.Contains(out, "`/dojo run <skill-name> [args]`") {
			t.Error("run footer missing")
		}
	})

	t.Run("filtered", func(t *testing.T) {
		out := List("garden")
		if !strings.Contains(out, "memory-garden") {
			t.Error("garden listing missing memory-garden")
		}
		if strings.Contains(out, "strategic-scout") {
			t.Error("garden listing leaked pipeline skills")
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		out := List("nonsense")
		if !strings.Contains(out, `No skills in category "nonsense"`) {
			t.Errorf("unknown category text = %q", out)
		}
	})
}
