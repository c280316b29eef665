package nodes

import (
	"github.com/custodia-labs/innergraph/internal/core/domain"
	"github.com/custodia-labs/innergraph/internal/core/parser"
)

// Button is a clickable button with an optional endpoint.
type Button struct {
	parser.Base
	Text     parser.Text
	Label    string
	Tooltip  string
	Style    string
	IconType string
	Endpoint *parser.NavigationEndpoint
}

func (*Button) Children() []parser.Node { return nil }

func buildButton(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	ep := body.Object("navigationEndpoint")
	if ep == nil {
		ep = body.Object("command")
	}
	return &Button{
		Text:     parser.ParseText(body.Get("text")),
		Label:    body.DigString("accessibilityData", "accessibilityData", "label"),
		Tooltip:  body.String("tooltip"),
		Style:    body.String("style"),
		IconType: iconType(body),
		Endpoint: parser.ParseEndpoint(ep),
	}, nil
}

// CallToActionButton is a prominent labelled button.
type CallToActionButton struct {
	parser.Base
	Label    parser.Text
	IconType string
	Style    string
}

func (*CallToActionButton) Children() []parser.Node { return nil }

func buildCallToActionButton(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &CallToActionButton{
		Label:    parser.ParseText(body.Get("label")),
		IconType: iconType(body),
		Style:    body.String("style"),
	}, nil
}

// MicroformatInfo is the basic information every microformat variant provides.
type MicroformatInfo struct {
	Title        string
	Description  string
	URLCanonical string
	Tags         []string
	IsUnlisted   bool
	IsFamilySafe bool
	Category     string
}

// Microformat is implemented by the microformat variants of a player response.
type Microformat interface {
	parser.Node
	Info() MicroformatInfo
}

// MicroformatData is the microformat of music player responses.
type MicroformatData struct {
	parser.Base
	MicroformatInfo
	Thumbnails    []domain.Thumbnail
	SiteName      string
	AppName       string
	AndroidPkg    string
	IOSAppStoreID string
	Noindex       bool
	Paid          bool
	PublishDate   string
	UploadDate    string
}

func (*MicroformatData) Children() []parser.Node { return nil }

// Info implements Microformat.
func (n *MicroformatData) Info() MicroformatInfo { return n.MicroformatInfo }

func buildMicroformatData(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &MicroformatData{
		MicroformatInfo: MicroformatInfo{
			Title:        body.String("title"),
			Description:  body.String("description"),
			URLCanonical: body.String("urlCanonical"),
			Tags:         body.Strings("tags"),
			IsUnlisted:   body.Bool("unlisted"),
			IsFamilySafe: body.Bool("familySafe"),
			Category:     body.String("category"),
		},
		Thumbnails:    parser.ParseThumbnails(body.Object("thumbnail")),
		SiteName:      body.String("siteName"),
		AppName:       body.String("appName"),
		AndroidPkg:    body.String("androidPackage"),
		IOSAppStoreID: body.String("iosAppStoreId"),
		Noindex:       body.Bool("noindex"),
		Paid:          body.Bool("paid"),
		PublishDate:   body.String("publishDate"),
		UploadDate:    body.String("uploadDate"),
	}, nil
}

// PlayerMicroformat is the microformat of web player responses.
type PlayerMicroformat struct {
	parser.Base
	MicroformatInfo
	Thumbnails    []domain.Thumbnail
	LengthSeconds int64
	OwnerName     string
	ChannelID     string
	PublishDate   string
	UploadDate    string
	EmbedURL      string
	Countries     []string
}

func (*PlayerMicroformat) Children() []parser.Node { return nil }

// Info implements Microformat.
func (n *PlayerMicroformat) Info() MicroformatInfo { return n.MicroformatInfo }

func buildPlayerMicroformat(_ *parser.Builder, body parser.Raw) (parser.Node, error) {
	return &PlayerMicroformat{
		MicroformatInfo: MicroformatInfo{
			Title:        parser.ParseText(body.Get("title")).String(),
			Description:  parser.ParseText(body.Get("description")).String(),
			Tags:         body.Strings("tags"),
			IsUnlisted:   body.Bool("isUnlisted"),
			IsFamilySafe: body.Bool("isFamilySafe"),
			Category:     body.String("category"),
		},
		Thumbnails:    parser.ParseThumbnails(body.Object("thumbnail")),
		LengthSeconds: body.Int("lengthSeconds"),
		OwnerName:     body.String("ownerChannelName"),
		ChannelID:     body.String("externalChannelId"),
		PublishDate:   body.String("publishDate"),
		UploadDate:    body.String("uploadDate"),
		EmbedURL:      body.DigString("embed", "iframeUrl"),
		Countries:     body.Strings("availableCountries"),
	}, nil
}

// ContinuationItem closes a list that has more items behind a continuation endpoint.
type ContinuationItem struct {
	parser.Base
	Trigger  string
	Endpoint *parser.NavigationEndpoint
	Button   parser.Node
}

func (n *ContinuationItem) Children() []parser.Node {
	return parser.Collect(n.Button)
}

// Token returns the continuation token, or "" when the item only carries a button.
func (n *ContinuationItem) Token() string {
	if n.Endpoint == nil {
		return ""
	}
	return n.Endpoint.Payload.String("token")
}

func buildContinuationItem(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ContinuationItem{
		Trigger:  body.String("trigger"),
		Endpoint: parser.ParseEndpoint(body.Object("continuationEndpoint")),
		Button:   f.Node("button"),
	}
	return n, f.Err()
}

// AppendContinuationItemsAction appends items to the list identified by TargetID.
type AppendContinuationItemsAction struct {
	parser.Base
	TargetID string
	Items    parser.Sequence
}

func (n *AppendContinuationItemsAction) Children() []parser.Node {
	return parser.Collect(n.Items)
}

// Continuation returns the token of the trailing ContinuationItem.
func (n *AppendContinuationItemsAction) Continuation() string {
	return trailingContinuation(n.Items)
}

func buildAppendContinuationItemsAction(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &AppendContinuationItemsAction{
		TargetID: body.String("targetId"),
		Items:    f.Sequence("continuationItems"),
	}
	return n, f.Err()
}

// ReloadContinuationItemsCommand replaces the items of the slot identified by TargetID.
type ReloadContinuationItemsCommand struct {
	parser.Base
	TargetID string
	Slot     string
	Items    parser.Sequence
}

func (n *ReloadContinuationItemsCommand) Children() []parser.Node {
	return parser.Collect(n.Items)
}

// Continuation returns the token of the trailing ContinuationItem.
func (n *ReloadContinuationItemsCommand) Continuation() string {
	return trailingContinuation(n.Items)
}

func buildReloadContinuationItemsCommand(b *parser.Builder, body parser.Raw) (parser.Node, error) {
	f := b.Fields(body)
	n := &ReloadContinuationItemsCommand{
		TargetID: body.String("targetId"),
		Slot:     body.String("slot"),
		Items:    f.Sequence("continuationItems"),
	}
	return n, f.Err()
}
