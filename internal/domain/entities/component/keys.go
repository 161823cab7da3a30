package component

// PropKey names a leaf in the props bucket.
type PropKey string

const (
	PropTitle           PropKey = "title"
	PropSubtitle        PropKey = "subtitle"
	PropCTAText         PropKey = "ctaText"
	PropCTALink         PropKey = "ctaLink"
	PropBackgroundImage PropKey = "backgroundImage"
	PropOverlay         PropKey = "overlay"

	PropText      PropKey = "text"
	PropLevel     PropKey = "level"
	PropAlignment PropKey = "alignment"

	PropLink      PropKey = "link"
	PropVariant   PropKey = "variant"
	PropSize      PropKey = "size"
	PropFullWidth PropKey = "fullWidth"

	PropSrc       PropKey = "src"
	PropAlt       PropKey = "alt"
	PropCaption   PropKey = "caption"
	PropObjectFit PropKey = "objectFit"

	PropSubmitText     PropKey = "submitText"
	PropIncludeName    PropKey = "includeName"
	PropIncludeEmail   PropKey = "includeEmail"
	PropIncludePhone   PropKey = "includePhone"
	PropIncludeMessage PropKey = "includeMessage"
	PropSuccessMessage PropKey = "successMessage"

	PropQuote   PropKey = "quote"
	PropAuthor  PropKey = "author"
	PropRole    PropKey = "role"
	PropCompany PropKey = "company"
	PropAvatar  PropKey = "avatar"

	PropColumns       PropKey = "columns"
	PropGap           PropKey = "gap"
	PropStackOnMobile PropKey = "stackOnMobile"
)

// StyleKey names a scalar leaf in the styles bucket.
type StyleKey string

const (
	StyleBackgroundColor StyleKey = "backgroundColor"
	StyleTextColor       StyleKey = "textColor"
	StyleFontSize        StyleKey = "fontSize"
	StyleFontWeight      StyleKey = "fontWeight"
	StyleBorderRadius    StyleKey = "borderRadius"
	StyleBoxShadow       StyleKey = "boxShadow"
)

// SpacingBox names one of the nested spacing objects in styles.
type SpacingBox string

const (
	SpacingPadding SpacingBox = "padding"
	SpacingMargin  SpacingBox = "margin"
)

// Edge names one side of a spacing box.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeRight  Edge = "right"
	EdgeBottom Edge = "bottom"
	EdgeLeft   Edge = "left"
)

// Edges in CSS shorthand order.
var Edges = []Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}

// ResponsiveKey names a leaf inside one breakpoint override.
type ResponsiveKey string

const (
	ResponsiveHidden   ResponsiveKey = "hidden"
	ResponsiveFontSize ResponsiveKey = "fontSize"
	ResponsivePadding  ResponsiveKey = "padding"
	ResponsiveMargin   ResponsiveKey = "margin"
)

// AdvancedKey names one of the raw-string advanced overrides.
type AdvancedKey string

const (
	AdvancedCSSClasses       AdvancedKey = "cssClasses"
	AdvancedCustomCSS        AdvancedKey = "customCSS"
	AdvancedHTMLID           AdvancedKey = "htmlId"
	AdvancedCustomAttributes AdvancedKey = "customAttributes"
)
