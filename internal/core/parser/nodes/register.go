package nodes

import "github.com/custodia-labs/innergraph/internal/core/parser"

// Register adds every built-in schema to reg.
func Register(reg *parser.Registry) {
	registerWatch(reg)
	registerMusic(reg)
	registerSections(reg)
	registerSearch(reg)
	registerMisc(reg)
}

// NewRegistry returns a frozen registry holding the built-in schemas.
func NewRegistry() *parser.Registry {
	reg := parser.NewRegistry()
	Register(reg)
	reg.Freeze()
	return reg
}

// NewBuilder returns a builder over the built-in schemas that reads wrapper keys,
// the way the service nests its renderers.
func NewBuilder(opts ...parser.BuilderOption) *parser.Builder {
	all := append([]parser.BuilderOption{parser.WithDiscriminator(parser.WrapperDiscriminator{})}, opts...)
	return parser.NewBuilder(NewRegistry(), all...)
}

func registerWatch(reg *parser.Registry) {
	reg.Register(parser.Schema{Type: TypeSingleColumnMusicWatchNextResults, Build: buildSingleColumnMusicWatchNextResults})
	reg.Register(parser.Schema{Type: TypeWatchNextTabbedResults, Build: buildWatchNextTabbedResults})
	reg.Register(parser.Schema{Type: TypeTab, Build: buildTab})
	reg.Register(parser.Schema{Type: TypeMusicQueue, Build: buildMusicQueue})
	reg.Register(parser.Schema{Type: TypePlaylistPanel, Build: buildPlaylistPanel})
	reg.Alias(TypePlaylistPanelContinuation, TypePlaylistPanel)
	reg.Register(parser.Schema{Type: TypePlaylistPanelVideo, Build: buildPlaylistPanelVideo})
	reg.Register(parser.Schema{Type: TypeAutomixPreviewVideo, Build: buildAutomixPreviewVideo})
	reg.Register(parser.Schema{Type: TypePlayerOverlay, Build: buildPlayerOverlay})
}

func registerMusic(reg *parser.Registry) {
	reg.Register(parser.Schema{Type: TypeMusicShelf, Build: buildMusicShelf})
	reg.Register(parser.Schema{Type: TypeMusicShelfContinuation, Build: buildMusicShelfContinuation})
	reg.Register(parser.Schema{Type: TypeMusicResponsiveListItem, Build: buildMusicResponsiveListItem})
	reg.Register(parser.Schema{Type: TypeMusicCarouselShelf, Build: buildMusicCarouselShelf})
	reg.Register(parser.Schema{Type: TypeMusicDescriptionShelf, Build: buildMusicDescriptionShelf})
}

func registerSections(reg *parser.Registry) {
	reg.Register(parser.Schema{Type: TypeSectionList, Build: buildSectionList})
	reg.Register(parser.Schema{Type: TypeItemSection, Build: buildItemSection})
	reg.Register(parser.Schema{Type: TypeItemSectionContinuation, Build: buildItemSectionContinuation})
	reg.Register(parser.Schema{Type: TypeItemSectionTabbedHeader, Build: buildItemSectionTabbedHeader})
	reg.Register(parser.Schema{Type: TypeItemSectionTab, Build: buildItemSectionTab})
	reg.Register(parser.Schema{Type: TypeRichGrid, Build: buildRichGrid})
	reg.Register(parser.Schema{Type: TypeMessage, Build: buildMessage})
	reg.RegisterShaped(TypeMessage, parser.HasKey("button"),
		parser.Schema{Type: TypeActionMessage, Build: buildActionMessage})
	reg.Register(parser.Schema{Type: TypeC4TabbedHeader, Build: buildC4TabbedHeader})
}

func registerSearch(reg *parser.Registry) {
	reg.Register(parser.Schema{Type: TypeSearchSuggestionsSection, Build: buildSearchSuggestionsSection})
	reg.Register(parser.Schema{Type: TypeSearchSuggestion, Build: buildSearchSuggestion})
	reg.Register(parser.Schema{Type: TypeVideo, Build: buildVideo})
	reg.Register(parser.Schema{Type: TypeAnalyticsShortsCarouselCard, Build: buildAnalyticsShortsCarouselCard})
}

func registerMisc(reg *parser.Registry) {
	reg.Register(parser.Schema{Type: TypeButton, Build: buildButton})
	reg.Register(parser.Schema{Type: TypeCallToActionButton, Build: buildCallToActionButton})
	reg.Register(parser.Schema{Type: TypeMicroformatData, Build: buildMicroformatData})
	reg.Register(parser.Schema{Type: TypePlayerMicroformat, Build: buildPlayerMicroformat})
	reg.Register(parser.Schema{Type: TypeContinuationItem, Build: buildContinuationItem})
	reg.Register(parser.Schema{Type: TypeAppendContinuationItemsAction, Build: buildAppendContinuationItemsAction})
	reg.Register(parser.Schema{Type: TypeReloadContinuationItemsCommand, Build: buildReloadContinuationItemsCommand})
}
