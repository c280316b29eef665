// Package nodes is the catalog of leaf schemas for the service's renderers.
// Each schema is a field projection of one renderer body; Register adds them
// all to a parser.Registry.
package nodes

import "github.com/custodia-labs/innergraph/internal/core/parser"

// Variant tags of the built-in schemas.
const (
	TypeSingleColumnMusicWatchNextResults = "SingleColumnMusicWatchNextResults"
	TypeWatchNextTabbedResults            = "WatchNextTabbedResults"
	TypeTab                               = "Tab"
	TypeMusicQueue                        = "MusicQueue"
	TypePlaylistPanel                     = "PlaylistPanel"
	TypePlaylistPanelContinuation         = "PlaylistPanelContinuation"
	TypePlaylistPanelVideo                = "PlaylistPanelVideo"
	TypeAutomixPreviewVideo               = "AutomixPreviewVideo"
	TypePlayerOverlay                     = "PlayerOverlay"

	TypeMusicShelf              = "MusicShelf"
	TypeMusicShelfContinuation  = "MusicShelfContinuation"
	TypeMusicResponsiveListItem = "MusicResponsiveListItem"
	TypeMusicCarouselShelf      = "MusicCarouselShelf"
	TypeMusicDescriptionShelf   = "MusicDescriptionShelf"

	TypeSectionList             = "SectionList"
	TypeItemSection             = "ItemSection"
	TypeItemSectionContinuation = "ItemSectionContinuation"
	TypeItemSectionTabbedHeader = "ItemSectionTabbedHeader"
	TypeItemSectionTab          = "ItemSectionTab"
	TypeRichGrid                = "RichGrid"
	TypeMessage                 = "Message"
	TypeActionMessage           = "ActionMessage"
	TypeC4TabbedHeader          = "C4TabbedHeader"

	TypeSearchSuggestionsSection    = "SearchSuggestionsSection"
	TypeSearchSuggestion            = "SearchSuggestion"
	TypeVideo                       = "Video"
	TypeAnalyticsShortsCarouselCard = "AnalyticsShortsCarouselCard"

	TypeButton                         = "Button"
	TypeCallToActionButton             = "CallToActionButton"
	TypeMicroformatData                = "MicroformatData"
	TypePlayerMicroformat              = "PlayerMicroformat"
	TypeContinuationItem               = "ContinuationItem"
	TypeAppendContinuationItemsAction  = "AppendContinuationItemsAction"
	TypeReloadContinuationItemsCommand = "ReloadContinuationItemsCommand"
)

// continuationKinds are the wrappers a legacy continuation token may sit in.
var continuationKinds = []string{
	"nextContinuationData",
	"reloadContinuationData",
	"nextRadioContinuationData",
}

// legacyContinuation reads the token from body.continuations[0].
func legacyContinuation(body parser.Raw) string {
	conts := body.Objects("continuations")
	if len(conts) == 0 {
		return ""
	}
	for _, k := range continuationKinds {
		if tok := conts[0].DigString(k, "continuation"); tok != "" {
			return tok
		}
	}
	return ""
}

// trailingContinuation returns the token of a ContinuationItem closing items.
func trailingContinuation(items parser.Sequence) string {
	if items.Len() == 0 {
		return ""
	}
	if ci, ok := items.At(items.Len() - 1).(*ContinuationItem); ok {
		return ci.Token()
	}
	return ""
}

func iconType(body parser.Raw) string {
	return body.DigString("icon", "iconType")
}
