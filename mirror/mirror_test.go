package mirror

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/AndCook/rover-data-processor/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestLocalPath(t *testing.T) {
	convey.Convey("object keys map below the destination", t, func() {
		p, err := LocalPath("/tmp/archive", "/mirror/rems/", "mirror/rems/DATA/SOL_00001_00089/SOL00001/A.LBL")
		convey.So(err, convey.ShouldBeNil)
		convey.So(p, convey.ShouldEqual, filepath.Join("/tmp/archive", "DATA", "SOL_00001_00089", "SOL00001", "A.LBL"))

		p, err = LocalPath("dest", "", "LABEL//MODRDR6.FMT")
		convey.So(err, convey.ShouldBeNil)
		convey.So(p, convey.ShouldEqual, filepath.Join("dest", "LABEL", "MODRDR6.FMT"))
	})

	convey.Convey("keys that escape or name nothing are rejected", t, func() {
		_, err := LocalPath("dest", "rems", "rems/../../etc/passwd")
		convey.So(errors.Is(err, ErrUnsafeKey), convey.ShouldBeTrue)
		_, err = LocalPath("dest", "rems", "rems/")
		convey.So(errors.Is(err, ErrUnsafeKey), convey.ShouldBeTrue)
	})
}

func TestNew(t *testing.T) {
	convey.Convey("endpoint and bucket are required", t, func() {
		_, err := New(config.ArchiveConfig{Bucket: "pds"})
		convey.So(err, convey.ShouldNotBeNil)
		_, err = New(config.ArchiveConfig{Endpoint: "localhost:9000"})
		convey.So(err, convey.ShouldNotBeNil)

		m, err := New(config.ArchiveConfig{Endpoint: "localhost:9000", Bucket: "pds", Prefix: "/rems/"})
		convey.So(err, convey.ShouldBeNil)
		convey.So(m.prefix, convey.ShouldEqual, "rems/")
	})
}
