package odl

import (
	"errors"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

const labelSrc = `PDS_VERSION_ID = PDS3
SPACECRAFT_CLOCK_START_TIME = "1/0397446468.000"
SOLAR_LONGITUDE = 137.2
GROUP = OBSERVATION_REQUEST_PARMS
  RQT_ID = 12
  SOURCE = "ENV"
END_GROUP = OBSERVATION_REQUEST_PARMS
OBJECT = TABLE
  ROWS = 2
END_OBJECT = TABLE
OBJECT = TABLE
  ROWS = 4
END_OBJECT = TABLE
END
`

func TestExtract(t *testing.T) {
	convey.Convey("extract flattens nested selections", t, func() {
		doc, err := ParseString(labelSrc)
		convey.So(err, convey.ShouldBeNil)

		spec := TargetSpec{
			Leaf("SOLAR_LONGITUDE"),
			Within("OBSERVATION_REQUEST_PARMS", Leaf("RQT_ID"), Leaf("SOURCE")),
		}
		fields, err := Extract(doc, spec)
		convey.So(err, convey.ShouldBeNil)
		convey.So(fields.Keys(), convey.ShouldResemble, []string{"SOLAR_LONGITUDE", "RQT_ID", "SOURCE"})
		convey.So(fields.Keys(), convey.ShouldResemble, spec.Leaves())
		v, _ := fields.Get("SOURCE")
		convey.So(v, convey.ShouldEqual, `"ENV"`)
		convey.So(fields.SortedKeys(), convey.ShouldResemble, []string{"RQT_ID", "SOLAR_LONGITUDE", "SOURCE"})
	})

	convey.Convey("missing keys fail with a path", t, func() {
		doc, _ := ParseString(labelSrc)
		_, err := Extract(doc, TargetSpec{Within("OBSERVATION_REQUEST_PARMS", Leaf("NOPE"))})
		convey.So(errors.Is(err, ErrKeyNotFound), convey.ShouldBeTrue)
		var pe *PathError
		convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
		convey.So(pe.Path, convey.ShouldResemble, []string{"OBSERVATION_REQUEST_PARMS", "NOPE"})
	})

	convey.Convey("repeated sections are not guessed", t, func() {
		doc, _ := ParseString(labelSrc)
		_, err := Extract(doc, TargetSpec{Within("TABLE", Leaf("ROWS"))})
		convey.So(errors.Is(err, ErrRepeatedSection), convey.ShouldBeTrue)
	})

	convey.Convey("kind mismatches", t, func() {
		doc, _ := ParseString(labelSrc)
		_, err := Extract(doc, TargetSpec{Leaf("OBSERVATION_REQUEST_PARMS")})
		convey.So(errors.Is(err, ErrNotScalar), convey.ShouldBeTrue)
		_, err = Extract(doc, TargetSpec{Within("SOLAR_LONGITUDE", Leaf("X"))})
		convey.So(errors.Is(err, ErrNotSection), convey.ShouldBeTrue)
	})
}

func TestTargetSpec(t *testing.T) {
	convey.Convey("dotted paths share nested entries", t, func() {
		spec, err := ParseTargetPaths([]string{"SOLAR_LONGITUDE", "PARMS.A", " PARMS.B ", ""})
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(spec), convey.ShouldEqual, 2)
		convey.So(spec[1].Key, convey.ShouldEqual, "PARMS")
		convey.So(spec.Leaves(), convey.ShouldResemble, []string{"SOLAR_LONGITUDE", "A", "B"})

		_, err = ParseTargetPaths([]string{"A..B"})
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("YAML form", t, func() {
		src := `
- SPACECRAFT_CLOCK_START_TIME
- OBSERVATION_REQUEST_PARMS:
    - RQT_ID
- SOLAR_LONGITUDE
`
		spec, err := ParseTargetSpec([]byte(src))
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(spec), convey.ShouldEqual, 3)
		convey.So(spec[1].IsLeaf(), convey.ShouldBeFalse)
		convey.So(spec.Leaves(), convey.ShouldResemble, []string{"SPACECRAFT_CLOCK_START_TIME", "RQT_ID", "SOLAR_LONGITUDE"})

		doc, _ := ParseString(labelSrc)
		fields, err := Extract(doc, spec)
		convey.So(err, convey.ShouldBeNil)
		v, _ := fields.Get("RQT_ID")
		convey.So(v, convey.ShouldEqual, "12")

		_, err = ParseTargetSpec([]byte("- A: B\n"))
		convey.So(err, convey.ShouldNotBeNil)
		_, err = ParseTargetSpec([]byte("A: [B]\n"))
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("sections marshal to YAML in file order", t, func() {
		doc, err := ParseString("Z = 1\nA = \"two\"\nOBJECT = C\nK = 3\nEND_OBJECT\n")
		convey.So(err, convey.ShouldBeNil)
		out, err := yaml.Marshal(doc)
		convey.So(err, convey.ShouldBeNil)
		text := string(out)
		convey.So(strings.Index(text, "Z:"), convey.ShouldBeLessThan, strings.Index(text, "A:"))
		convey.So(strings.Index(text, "A:"), convey.ShouldBeLessThan, strings.Index(text, "C:"))

		var back map[string]any
		convey.So(yaml.Unmarshal(out, &back), convey.ShouldBeNil)
		convey.So(back["A"], convey.ShouldEqual, `"two"`)
		convey.So(back["Z"], convey.ShouldEqual, "1")
		convey.So(back["C"], convey.ShouldResemble, map[string]any{"K": "3"})
	})
}
