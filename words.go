package main

// Category is one entry of a language's word catalog. Key is stable across
// languages; Name and Words are localized.
type Category struct {
	Key   string   `json:"id"`
	Name  string   `json:"name"`
	Words []string `json:"words"`
}

// legacyCategoryIDs maps the German category ids used by older clients onto
// the canonical keys.
var legacyCategoryIDs = map[string]string{
	"tiere":       "animals",
	"essen":       "food",
	"orte":        "places",
	"sport":       "sports",
	"gegenstände": "objects",
	"natur":       "nature",
	"berufe":      "professions",
	"filme":       "movies",
}

var wordCatalog = map[string][]Category{
	"de": {
		{
			Key:   "animals",
			Name:  "Tiere",
			Words: []string{"Katze", "Hund", "Elefant", "Löwe", "Tiger", "Pinguin", "Känguru", "Giraffe", "Zebra", "Affe", "Bär", "Wolf", "Fuchs", "Adler", "Delfin", "Hai", "Schildkröte", "Papagei", "Hamster", "Kaninchen"},
		},
		{
			Key:   "food",
			Name:  "Essen & Trinken",
			Words: []string{"Pizza", "Burger", "Pasta", "Sushi", "Salat", "Suppe", "Steak", "Käse", "Brot", "Kuchen", "Eis", "Schokolade", "Kaffee", "Tee", "Bier", "Wein", "Wasser", "Saft", "Smoothie", "Sandwich"},
		},
		{
			Key:   "places",
			Name:  "Orte",
			Words: []string{"Strand", "Berg", "Wald", "Stadt", "Dorf", "Schule", "Krankenhaus", "Supermarkt", "Restaurant", "Kino", "Theater", "Museum", "Bibliothek", "Park", "Flughafen", "Bahnhof", "Hotel", "Schloss", "Kirche", "Stadion"},
		},
		{
			Key:   "sports",
			Name:  "Sport & Hobbys",
			Words: []string{"Fußball", "Basketball", "Tennis", "Schwimmen", "Laufen", "Radfahren", "Skifahren", "Tanzen", "Singen", "Malen", "Lesen", "Kochen", "Fotografieren", "Wandern", "Yoga", "Boxen", "Golf", "Reiten", "Angeln", "Schach"},
		},
		{
			Key:   "objects",
			Name:  "Gegenstände",
			Words: []string{"Computer", "Handy", "Fernseher", "Auto", "Fahrrad", "Flugzeug", "Schiff", "Buch", "Stift", "Tisch", "Stuhl", "Bett", "Lampe", "Uhr", "Brille", "Schlüssel", "Tasche", "Schuhe", "Gitarre", "Kamera"},
		},
		{
			Key:   "nature",
			Name:  "Natur",
			Words: []string{"Sonne", "Mond", "Stern", "Wolke", "Regen", "Schnee", "Blitz", "Regenbogen", "Baum", "Blume", "Gras", "Rose", "Tulpe", "Berg", "Fluss", "See", "Meer", "Wüste", "Vulkan", "Wasserfall"},
		},
		{
			Key:   "professions",
			Name:  "Berufe",
			Words: []string{"Arzt", "Lehrer", "Polizist", "Feuerwehrmann", "Koch", "Pilot", "Ingenieur", "Künstler", "Musiker", "Schauspieler", "Journalist", "Anwalt", "Richter", "Verkäufer", "Manager", "Programmierer", "Designer", "Fotograf", "Friseur", "Mechaniker"},
		},
		{
			Key:   "movies",
			Name:  "Filme & Serien",
			Words: []string{"Star Wars", "Harry Potter", "Titanic", "Avatar", "Marvel", "Batman", "James Bond", "Herr der Ringe", "Matrix", "Inception", "Friends", "Breaking Bad", "Game of Thrones", "Stranger Things", "The Office", "Simpsons", "Disney", "Pixar", "Netflix", "Hollywood"},
		},
	},
	"en": {
		{
			Key:   "animals",
			Name:  "Animals",
			Words: []string{"Cat", "Dog", "Elephant", "Lion", "Tiger", "Penguin", "Kangaroo", "Giraffe", "Zebra", "Monkey", "Bear", "Wolf", "Fox", "Eagle", "Dolphin", "Shark", "Turtle", "Parrot", "Hamster", "Rabbit"},
		},
		{
			Key:   "food",
			Name:  "Food & Drinks",
			Words: []string{"Pizza", "Burger", "Pasta", "Sushi", "Salad", "Soup", "Steak", "Cheese", "Bread", "Cake", "Ice Cream", "Chocolate", "Coffee", "Tea", "Beer", "Wine", "Water", "Juice", "Smoothie", "Sandwich"},
		},
		{
			Key:   "places",
			Name:  "Places",
			Words: []string{"Beach", "Mountain", "Forest", "City", "Village", "School", "Hospital", "Supermarket", "Restaurant", "Cinema", "Theater", "Museum", "Library", "Park", "Airport", "Station", "Hotel", "Castle", "Church", "Stadium"},
		},
		{
			Key:   "sports",
			Name:  "Sports & Hobbies",
			Words: []string{"Football", "Basketball", "Tennis", "Swimming", "Running", "Cycling", "Skiing", "Dancing", "Singing", "Painting", "Reading", "Cooking", "Photography", "Hiking", "Yoga", "Boxing", "Golf", "Riding", "Fishing", "Chess"},
		},
		{
			Key:   "objects",
			Name:  "Objects",
			Words: []string{"Computer", "Phone", "Television", "Car", "Bicycle", "Airplane", "Ship", "Book", "Pen", "Table", "Chair", "Bed", "Lamp", "Clock", "Glasses", "Keys", "Bag", "Shoes", "Guitar", "Camera"},
		},
		{
			Key:   "nature",
			Name:  "Nature",
			Words: []string{"Sun", "Moon", "Star", "Cloud", "Rain", "Snow", "Lightning", "Rainbow", "Tree", "Flower", "Grass", "Rose", "Tulip", "Mountain", "River", "Lake", "Ocean", "Desert", "Volcano", "Waterfall"},
		},
		{
			Key:   "professions",
			Name:  "Professions",
			Words: []string{"Doctor", "Teacher", "Police Officer", "Firefighter", "Chef", "Pilot", "Engineer", "Artist", "Musician", "Actor", "Journalist", "Lawyer", "Judge", "Salesperson", "Manager", "Programmer", "Designer", "Photographer", "Hairdresser", "Mechanic"},
		},
		{
			Key:   "movies",
			Name:  "Movies & Shows",
			Words: []string{"Star Wars", "Harry Potter", "Titanic", "Avatar", "Marvel", "Batman", "James Bond", "Lord of the Rings", "Matrix", "Inception", "Friends", "Breaking Bad", "Game of Thrones", "Stranger Things", "The Office", "Simpsons", "Disney", "Pixar", "Netflix", "Hollywood"},
		},
	},
}
