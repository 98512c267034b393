package database

import (
	"log"

	"cardapio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads the sample catalog, the default store settings and an admin
// account when the respective tables are empty.
func Seed(db *gorm.DB) error {
	if err := seedCatalog(db); err != nil {
		return err
	}
	if err := seedSettings(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding sample catalog...")

	products := []models.Product{
		{
			ID: "1", Name: "X-Burger",
			Description: "Hambúrguer artesanal, queijo, alface, tomate e maionese da casa",
			Price:       22.90, Category: models.CategoryLanches,
			ImageURL:  "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=800",
			Available: true, PreparationTime: 15,
			Ingredients:      []string{"Pão", "Hambúrguer", "Queijo", "Alface", "Tomate", "Maionese"},
			Allergens:        []string{},
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
			Featured:             true,
		},
		{
			ID: "2", Name: "X-Bacon",
			Description: "Hambúrguer artesanal, bacon crocante, queijo, alface, tomate e maionese da casa",
			Price:       26.90, Category: models.CategoryLanches,
			ImageURL:  "https://images.unsplash.com/photo-1553979459-d2229ba7433b?w=800",
			Available: true, PreparationTime: 15,
			Ingredients:      []string{"Pão", "Hambúrguer", "Bacon", "Queijo", "Alface", "Tomate", "Maionese"},
			Allergens:        []string{},
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
		},
		{
			ID: "3", Name: "Batata Frita Grande",
			Description: "Porção de batatas fritas crocantes com sal e orégano",
			Price:       24.90, Category: models.CategoryPorcoes,
			ImageURL:  "https://images.unsplash.com/photo-1630384060421-cb20d0e0649d?w=800",
			Available: true, PreparationTime: 20,
			Ingredients: []string{"Batata", "Sal", "Orégano"},
			Allergens:   []string{},
			Vegetarian:  true, Vegan: true, GlutenFree: true,
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
		},
		{
			ID: "4", Name: "Isca de Frango",
			Description: "Porção de iscas de frango empanadas e crocantes",
			Price:       32.90, Category: models.CategoryPorcoes,
			ImageURL:  "https://images.unsplash.com/photo-1562967914-608f82629710?w=800",
			Available: true, PreparationTime: 25,
			Ingredients:      []string{"Frango", "Farinha", "Temperos"},
			Allergens:        []string{"Glúten"},
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
		},
		{
			ID: "5", Name: "Pizza Margherita",
			Description: "Molho de tomate, mussarela, tomate e manjericão fresco",
			Price:       45.90, Category: models.CategoryPizzas,
			ImageURL:  "https://images.unsplash.com/photo-1604068549290-dea0e4a305ca?w=800",
			Available: true, PreparationTime: 30,
			Ingredients: []string{"Massa", "Molho de Tomate", "Mussarela", "Tomate", "Manjericão"},
			Allergens:   []string{"Leite"},
			Vegetarian:  true,
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
			Featured:             true,
		},
		{
			ID: "6", Name: "Pizza Calabresa",
			Description: "Molho de tomate, mussarela, calabresa e cebola",
			Price:       48.90, Category: models.CategoryPizzas,
			ImageURL:  "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=800",
			Available: true, PreparationTime: 30,
			Ingredients:      []string{"Massa", "Molho de Tomate", "Mussarela", "Calabresa", "Cebola"},
			Allergens:        []string{"Leite"},
			AllowAdditionals: true,
			AdditionalCategories: []models.AdditionalCategory{models.AdditionalOthers},
		},
		{
			ID: "7", Name: "Combo Família",
			Description: "Pizza grande, porção de batata grande e 2 refrigerantes 2L",
			Price:       89.90, Category: models.CategoryCombos,
			ImageURL:  "https://images.unsplash.com/photo-1506354666786-959d6d497f1a?w=800",
			Available: true, PreparationTime: 40,
			Ingredients: []string{"Pizza", "Batata Frita", "Refrigerante"},
			Allergens:   []string{"Leite"},
		},
		{
			ID: "8", Name: "Combo Duplo",
			Description: "2 lanches, 1 porção de batata média e 2 refrigerantes 350ml",
			Price:       64.90, Category: models.CategoryCombos,
			ImageURL:  "https://images.unsplash.com/photo-1610614819513-58e34989848b?w=800",
			Available: true, PreparationTime: 25,
			Ingredients: []string{"Hambúrguer", "Batata Frita", "Refrigerante"},
			Allergens:   []string{"Glúten"},
		},
		{
			ID: "9", Name: "Refrigerante 350ml",
			Description: "Coca-Cola, Guaraná ou Sprite",
			Price:       6.90, Category: models.CategoryBebidas,
			ImageURL:  "https://images.unsplash.com/photo-1622483767028-3f66f32aef97?w=800",
			Available: true, PreparationTime: 1,
			Ingredients: []string{"Refrigerante"},
			Allergens:   []string{},
			GlutenFree:  true,
		},
		{
			ID: "10", Name: "Refrigerante 2L",
			Description: "Coca-Cola, Guaraná ou Sprite",
			Price:       12.90, Category: models.CategoryBebidas,
			ImageURL:  "https://images.unsplash.com/photo-1622483767028-3f66f32aef97?w=800",
			Available: true, PreparationTime: 1,
			Ingredients: []string{"Refrigerante"},
			Allergens:   []string{},
			GlutenFree:  true,
		},
	}

	additionals := []models.Additional{
		{ID: "1", Name: "Bacon Extra", Price: 4.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "2", Name: "Queijo Extra", Price: 3.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "3", Name: "Ovo", Price: 2.50, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "4", Name: "Catupiry", Price: 4.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "5", Name: "Cheddar", Price: 4.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "6", Name: "Calabresa Extra", Price: 4.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "7", Name: "Molho Extra", Price: 1.50, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
		{ID: "8", Name: "Batata Extra", Price: 8.00, Category: models.AdditionalOthers, Available: true, MaxQuantity: 2},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}
	return db.Create(&additionals).Error
}

func seedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Settings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding default store settings...")

	settings := models.Settings{
		ID:              1,
		WhatsAppNumber:  "45998498928",
		MessageTemplate: "Olá! Seu pedido foi recebido:\n\n{items}\n\nTotal: R$ {total}\n\nObrigado pela preferência!",
		PickupAddress: models.PickupAddress{
			Street:     "Rua Santos Dumont",
			Number:     "2005",
			Complement: "Prédio German Tech Sistemas",
		},
		StoreSubtitle:     "Sabor e tecnologia em cada pedido",
		ShowProductImages: true,
		BusinessHours: models.BusinessHours{
			"Segunda-feira": {Open: "10:00", Close: "22:00"},
			"Terça-feira":   {Open: "10:00", Close: "22:00"},
			"Quarta-feira":  {Open: "10:00", Close: "22:00"},
			"Quinta-feira":  {Open: "10:00", Close: "22:00"},
			"Sexta-feira":   {Open: "10:00", Close: "23:00"},
			"Sábado":        {Open: "10:00", Close: "23:00"},
			"Domingo":       {Open: "12:00", Close: "20:00"},
		},
		SpecialDates: []models.SpecialDate{},
	}

	return db.Create(&settings).Error
}

func seedAdmin(db *gorm.DB) error {
	var admin models.Customer
	err := db.First(&admin, "email = ?", "admin@cardapio.local").Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	log.Println("Creating default admin account...")

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Create(&models.Customer{
		ID:           "admin",
		Name:         "Administrador",
		Email:        "admin@cardapio.local",
		PasswordHash: string(hash),
		IsAdmin:      true,
		Favorites:    []string{},
	}).Error
}
