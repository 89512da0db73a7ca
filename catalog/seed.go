package catalog

import "context"

func money(v float64) *float64 { return &v }

// DefaultMovies is the catalog loaded into an empty database.
var DefaultMovies = []MovieInput{
	{"The Shawshank Redemption", "Frank Darabont", 1994, "English", 9.3, "Drama", 142, money(58.3)},
	{"The Godfather", "Francis Ford Coppola", 1972, "English", 9.2, "Crime", 175, money(134.9)},
	{"Pulp Fiction", "Quentin Tarantino", 1994, "English", 8.9, "Crime", 154, money(107.9)},
	{"The Dark Knight", "Christopher Nolan", 2008, "English", 9.0, "Action", 152, money(1004.6)},
	{"12 Angry Men", "Sidney Lumet", 1957, "English", 9.0, "Drama", 96, money(0.5)},
	{"Schindler's List", "Steven Spielberg", 1993, "English", 9.0, "Biography", 195, money(96.9)},
	{"The Lord of the Rings: The Return of the King", "Peter Jackson", 2003, "English", 9.0, "Adventure", 201, money(1146.0)},
	{"Inception", "Christopher Nolan", 2010, "English", 8.8, "Sci-Fi", 148, money(836.8)},
	{"Goodfellas", "Martin Scorsese", 1990, "English", 8.7, "Crime", 146, money(46.8)},
	{"The Matrix", "Lana Wachowski", 1999, "English", 8.7, "Sci-Fi", 136, money(463.5)},
	{"Forrest Gump", "Robert Zemeckis", 1994, "English", 8.8, "Drama", 142, money(678.2)},
	{"City of God", "Fernando Meirelles", 2002, "Portuguese", 8.6, "Crime", 130, money(7.6)},
	{"Seven Samurai", "Akira Kurosawa", 1954, "Japanese", 8.6, "Action", 207, money(0.3)},
	{"Spirited Away", "Hayao Miyazaki", 2001, "Japanese", 8.6, "Animation", 125, money(355.5)},
	{"Saving Private Ryan", "Steven Spielberg", 1998, "English", 8.6, "War", 169, money(482.3)},
	{"Life Is Beautiful", "Roberto Benigni", 1997, "Italian", 8.6, "Comedy", 116, money(57.6)},
	{"The Usual Suspects", "Bryan Singer", 1995, "English", 8.5, "Crime", 106, money(23.3)},
	{"Léon: The Professional", "Luc Besson", 1994, "English", 8.5, "Action", 110, money(19.5)},
	{"The Lion King", "Roger Allers", 1994, "English", 8.5, "Animation", 88, money(968.5)},
	{"American History X", "Tony Kaye", 1998, "English", 8.5, "Drama", 119, money(6.7)},
	{"Terminator 2: Judgment Day", "James Cameron", 1991, "English", 8.5, "Action", 137, money(519.8)},
	{"Cinema Paradiso", "Giuseppe Tornatore", 1988, "Italian", 8.5, "Drama", 155, money(11.9)},
	{"Back to the Future", "Robert Zemeckis", 1985, "English", 8.5, "Adventure", 116, money(380.6)},
	{"Raiders of the Lost Ark", "Steven Spielberg", 1981, "English", 8.4, "Action", 115, money(389.9)},
	{"Apocalypse Now", "Francis Ford Coppola", 1979, "English", 8.4, "War", 147, money(83.5)},
	{"Alien", "Ridley Scott", 1979, "English", 8.4, "Sci-Fi", 117, money(104.9)},
	{"The Great Dictator", "Charlie Chaplin", 1940, "English", 8.4, "Comedy", 125, money(0.3)},
	{"Modern Times", "Charlie Chaplin", 1936, "English", 8.5, "Comedy", 87, money(0.2)},
	{"City Lights", "Charlie Chaplin", 1931, "English", 8.5, "Comedy", 87, money(0.02)},
	{"Casablanca", "Michael Curtiz", 1942, "English", 8.5, "Drama", 102, money(1.0)},
}

// EnsureSeeded inserts DefaultMovies when the table is empty and returns how
// many rows it added. A non-empty table is left alone.
func (d *Database) EnsureSeeded(ctx context.Context) (int, error) {
	n, err := d.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n != 0 {
		return 0, nil
	}
	return d.InsertAll(ctx, DefaultMovies)
}

// InsertAll inserts each movie in order through Insert. It stops at the
// first failure and returns how many were inserted before it.
func (d *Database) InsertAll(ctx context.Context, movies []MovieInput) (int, error) {
	for i, in := range movies {
		if _, err := d.Insert(ctx, in); err != nil {
			return i, err
		}
	}
	return len(movies), nil
}
