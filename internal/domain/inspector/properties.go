package inspector

import "github.com/AtRiskMedia/tractstack-inspector/internal/domain/entities/component"

var (
	headingLevels = labelled(
		"h1", "Heading 1", "h2", "Heading 2", "h3", "Heading 3",
		"h4", "Heading 4", "h5", "Heading 5", "h6", "Heading 6",
	)
	alignments     = labelled("left", "Left", "center", "Center", "right", "Right")
	buttonVariants = labelled("primary", "Primary", "secondary", "Secondary", "outline", "Outline", "ghost", "Ghost")
	buttonSizes    = labelled("sm", "Small", "md", "Medium", "lg", "Large")
	objectFits     = options("cover", "contain", "fill", "none", "scale-down")
	gridColumns    = options("1", "2", "3", "4", "5", "6")
	gridGaps       = labelled("none", "None", "sm", "Small", "md", "Medium", "lg", "Large")
	fontWeights    = labelled("normal", "Normal", "medium", "Medium", "semibold", "Semibold", "bold", "Bold")
	boxShadows     = labelled("none", "None", "sm", "Small", "md", "Medium", "lg", "Large", "xl", "Extra large")
)

// PropertyFields returns the property field set for t. The switch covers the
// closed type set; ok is false for anything else.
func PropertyFields(t component.Type) (fields []Field, ok bool) {
	switch t {
	case component.TypeHero:
		return []Field{
			textProp(component.PropTitle, "Title", "Enter hero title"),
			textareaProp(component.PropSubtitle, "Subtitle", "Enter subtitle"),
			textProp(component.PropCTAText, "Button Text", "Get Started"),
			textProp(component.PropCTALink, "Button Link", "/signup"),
			textProp(component.PropBackgroundImage, "Background Image URL", "https://"),
			checkboxProp(component.PropOverlay, "Dark overlay"),
		}, true
	case component.TypeHeading:
		return []Field{
			textProp(component.PropText, "Heading Text", "Enter heading"),
			selectProp(component.PropLevel, "Heading Level", headingLevels, "h2"),
			selectProp(component.PropAlignment, "Alignment", alignments, "left"),
		}, true
	case component.TypeParagraph:
		return []Field{
			textareaProp(component.PropText, "Text", "Enter paragraph text"),
			selectProp(component.PropAlignment, "Alignment", alignments, "left"),
		}, true
	case component.TypeButton:
		return []Field{
			textProp(component.PropText, "Button Text", "Click me"),
			textProp(component.PropLink, "Link", "/"),
			selectProp(component.PropVariant, "Variant", buttonVariants, "primary"),
			selectProp(component.PropSize, "Size", buttonSizes, "md"),
			checkboxProp(component.PropFullWidth, "Full width"),
		}, true
	case component.TypeImage:
		return []Field{
			textProp(component.PropSrc, "Image URL", "https://"),
			textProp(component.PropAlt, "Alt Text", "Describe the image"),
			textProp(component.PropCaption, "Caption", ""),
			selectProp(component.PropObjectFit, "Object Fit", objectFits, "cover"),
		}, true
	case component.TypeForm:
		return []Field{
			textProp(component.PropTitle, "Form Title", "Contact us"),
			textProp(component.PropSubmitText, "Submit Button Text", "Submit"),
			softTrueProp(component.PropIncludeName, "Include name field"),
			softTrueProp(component.PropIncludeEmail, "Include email field"),
			checkboxProp(component.PropIncludePhone, "Include phone field"),
			softTrueProp(component.PropIncludeMessage, "Include message field"),
			textareaProp(component.PropSuccessMessage, "Success Message", "Thanks! We'll be in touch."),
		}, true
	case component.TypeTestimonial:
		return []Field{
			textareaProp(component.PropQuote, "Quote", "What did they say?"),
			textProp(component.PropAuthor, "Author", "Jane Doe"),
			textProp(component.PropRole, "Role", "Head of Marketing"),
			textProp(component.PropCompany, "Company", "Acme Inc."),
			textProp(component.PropAvatar, "Avatar URL", "https://"),
		}, true
	case component.TypeGrid:
		return []Field{
			selectProp(component.PropColumns, "Columns", gridColumns, "3"),
			selectProp(component.PropGap, "Gap", gridGaps, "md"),
			checkboxProp(component.PropStackOnMobile, "Stack on mobile"),
		}, true
	}
	return nil, false
}
