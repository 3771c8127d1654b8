package domain

// Genres is the fixed category list offered on the home screen
var Genres = []string{
	"Drama", "History", "Romance", "Horror", "Mystery", "Thriller",
	"Comedy", "Family", "Fantasy", "Documentary", "Action", "Adventure",
	"Western", "Crime", "Music", "Musical", "War", "Biography",
	"Sci-Fi", "Film-Noir", "Animation", "Sport", "News",
}
