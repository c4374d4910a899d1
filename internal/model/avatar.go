package model

type AvatarItemType string

const (
	AvatarBase      AvatarItemType = "base"
	AvatarTop       AvatarItemType = "top"
	AvatarBottom    AvatarItemType = "bottom"
	AvatarShoes     AvatarItemType = "shoes"
	AvatarAccessory AvatarItemType = "accessory"
)

// AvatarItem is a cosmetic catalog entry purchasable in the shop. The
// catalog is static; ownership lives in User.Inventory.
type AvatarItem struct {
	ID   string         `json:"id"`
	Type AvatarItemType `json:"type"`
	Name string         `json:"name"`
	Cost int            `json:"cost"`
	SVG  string         `json:"svg"`
}

// AvatarItems is the full cosmetic catalog.
var AvatarItems = []AvatarItem{
	{ID: "base_boy", Type: AvatarBase, Name: "Niño", Cost: 0, SVG: "base_boy"},
	{ID: "base_girl", Type: AvatarBase, Name: "Niña", Cost: 0, SVG: "base_girl"},
	{ID: "base_hero", Type: AvatarBase, Name: "Superhéroe", Cost: 1000, SVG: "base_hero"},
	{ID: "base_robot", Type: AvatarBase, Name: "Robot", Cost: 1000, SVG: "base_robot"},

	{ID: "top_tshirt_red", Type: AvatarTop, Name: "Camiseta Roja", Cost: 0, SVG: "top_tshirt_red"},
	{ID: "top_tshirt_blue", Type: AvatarTop, Name: "Camiseta Azul", Cost: 200, SVG: "top_tshirt_blue"},
	{ID: "top_tshirt_green", Type: AvatarTop, Name: "Camiseta Verde", Cost: 200, SVG: "top_tshirt_green"},
	{ID: "top_dress_pink", Type: AvatarTop, Name: "Vestido Rosa", Cost: 200, SVG: "top_dress_pink"},

	{ID: "bot_shorts_blue", Type: AvatarBottom, Name: "Pantalones Cortos", Cost: 0, SVG: "bot_shorts_blue"},
	{ID: "bot_skirt_purple", Type: AvatarBottom, Name: "Falda Morada", Cost: 0, SVG: "bot_skirt_purple"},
	{ID: "bot_jeans", Type: AvatarBottom, Name: "Vaqueros", Cost: 200, SVG: "bot_jeans"},

	{ID: "shoes_sneakers", Type: AvatarShoes, Name: "Zapatillas", Cost: 0, SVG: "shoes_sneakers"},
	{ID: "shoes_boots", Type: AvatarShoes, Name: "Botas", Cost: 200, SVG: "shoes_boots"},

	{ID: "acc_cap", Type: AvatarAccessory, Name: "Gorra", Cost: 200, SVG: "acc_cap"},
	{ID: "acc_glasses", Type: AvatarAccessory, Name: "Gafas", Cost: 200, SVG: "acc_glasses"},
	{ID: "acc_cape", Type: AvatarAccessory, Name: "Capa", Cost: 200, SVG: "acc_cape"},
	{ID: "acc_crown", Type: AvatarAccessory, Name: "Corona", Cost: 500, SVG: "acc_crown"},
}

// AvatarItemByID looks up a catalog item, or nil if unknown.
func AvatarItemByID(id string) *AvatarItem {
	for i := range AvatarItems {
		if AvatarItems[i].ID == id {
			return &AvatarItems[i]
		}
	}
	return nil
}
