package ui

import (
	"testing"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

func TestAssetModeRoundTrip(t *testing.T) {
	for _, mode := range []string{model.AssetModeAuto, model.AssetModeDev, model.AssetModePackaged} {
		if got := assetModeValue(assetModeLabel(mode)); got != mode {
			t.Errorf("mode %q came back as %q", mode, got)
		}
	}
	if assetModeLabel("bogus") != "Automatic" {
		t.Error("unknown modes should show as Automatic")
	}
}
