package urlstrategy

import (
	"github.com/tendant/folio/pkg/folio"
)

// URLStrategy defines how a site-relative asset path is published to clients
type URLStrategy interface {
	// AssetURL maps a site path such as /projects/demo/cover.jpg onto the URL
	// a client should fetch.
	AssetURL(sitePath string) (string, error)
}

// Apply rewrites every URL of media through strategy. The input is not
// modified.
func Apply(strategy URLStrategy, media folio.Media) (folio.Media, error) {
	out := folio.Media{Gallery: make([]folio.GalleryImage, 0, len(media.Gallery))}

	var err error
	if out.CoverImage, err = mapURL(strategy, media.CoverImage); err != nil {
		return folio.Media{}, err
	}
	if out.Video, err = mapURL(strategy, media.Video); err != nil {
		return folio.Media{}, err
	}
	if out.PDF, err = mapURL(strategy, media.PDF); err != nil {
		return folio.Media{}, err
	}
	for _, img := range media.Gallery {
		src, err := mapURL(strategy, img.Src)
		if err != nil {
			return folio.Media{}, err
		}
		out.Gallery = append(out.Gallery, folio.GalleryImage{Src: src, Alt: img.Alt})
	}
	return out, nil
}

func mapURL(strategy URLStrategy, u string) (string, error) {
	if u == "" {
		return "", nil
	}
	return strategy.AssetURL(u)
}
