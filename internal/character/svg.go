package character

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Size is the width and height of rendered avatar in pixels.
const Size = 64

// SVG returns component rendering character as inline svg image.
func (c Character) SVG() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts := []string{
			fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" class="rpg-character" width="%d" height="%d" viewBox="0 0 64 64" role="img" aria-label="%s">`,
				Size, Size, templ.EscapeString(c.Seed)),
			fmt.Sprintf(`<rect x="18" y="38" width="28" height="22" rx="6" fill="%s"/>`, c.ShirtColor),
			fmt.Sprintf(`<circle cx="32" cy="26" r="14" fill="%s"/>`, c.Skin),
			c.hairSVG(),
			c.faceSVG(),
			c.hatSVG(),
			c.accessorySVG(),
			`</svg>`,
		}
		for _, p := range parts {
			if _, err := io.WriteString(w, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c Character) hairSVG() string {
	switch c.HairStyle {
	case HairShort:
		return fmt.Sprintf(`<path d="M18 24 Q32 6 46 24 L46 18 Q32 4 18 18 Z" fill="%s"/>`, c.HairColor)
	case HairLong:
		return fmt.Sprintf(`<path d="M17 40 L17 22 Q32 4 47 22 L47 40 L42 40 L42 24 Q32 14 22 24 L22 40 Z" fill="%s"/>`, c.HairColor)
	case HairSpiky:
		return fmt.Sprintf(`<path d="M18 20 L22 8 L26 16 L32 6 L38 16 L42 8 L46 20 Z" fill="%s"/>`, c.HairColor)
	default:
		return ""
	}
}

func (c Character) faceSVG() string {
	eyes := `<circle cx="27" cy="25" r="1.8" fill="#222"/><circle cx="37" cy="25" r="1.8" fill="#222"/>`
	switch c.Face {
	case FaceHappy:
		return eyes + `<path d="M26 31 Q32 36 38 31" stroke="#222" stroke-width="1.5" fill="none"/>`
	case FaceSurprised:
		return eyes + `<circle cx="32" cy="32" r="2.2" fill="#222"/>`
	default:
		return eyes + `<path d="M27 32 L37 32" stroke="#222" stroke-width="1.5"/>`
	}
}

func (c Character) hatSVG() string {
	switch c.Hat {
	case HatWizard:
		return `<path d="M16 16 L48 16 L34 -2 Z" fill="#3b2f7f"/><circle cx="34" cy="6" r="1.5" fill="#f4d03f"/>`
	case HatKnight:
		return `<path d="M17 24 Q32 2 47 24 L47 18 Q32 0 17 18 Z" fill="#9aa5b1"/><rect x="30" y="4" width="4" height="8" fill="#a61c3c"/>`
	case HatCrown:
		return `<path d="M20 14 L20 6 L26 11 L32 4 L38 11 L44 6 L44 14 Z" fill="#f4d03f"/>`
	case HatBandana:
		return `<path d="M18 18 Q32 8 46 18 L46 21 L18 21 Z" fill="#c0392b"/>`
	default:
		return ""
	}
}

func (c Character) accessorySVG() string {
	switch c.Accessory {
	case AccessorySword:
		return `<rect x="50" y="30" width="3" height="24" fill="#bdc3c7"/><rect x="47" y="48" width="9" height="3" fill="#6e2c00"/>`
	case AccessoryStaff:
		return `<rect x="51" y="22" width="3" height="38" fill="#8e5b2d"/><circle cx="52.5" cy="21" r="4" fill="#5dade2"/>`
	case AccessoryShield:
		return `<path d="M6 38 L16 38 L16 48 Q11 56 6 48 Z" fill="#1e407c" stroke="#f4d03f" stroke-width="1"/>`
	default:
		return ""
	}
}
