package shop

import "fmt"

// Message is the line the merchant says after a confirm.
func Message(kind ErrorKind, mode Mode, name string, qty int) string {
	switch kind {
	case Success:
		if mode == Sell {
			return fmt.Sprintf("Sold %d %s. Pleasure doing business!", qty, name)
		}
		return fmt.Sprintf("Bought %d %s. Thank you kindly!", qty, name)
	case Restricted:
		if mode == Sell {
			return fmt.Sprintf("I can't take %s off your hands.", name)
		}
		return fmt.Sprintf("Sorry, %s isn't for sale.", name)
	case OutOfStock:
		return fmt.Sprintf("I'm all out of %s.", name)
	case InsufficientStock:
		return fmt.Sprintf("I don't have %d %s in stock.", qty, name)
	case InsufficientSpace:
		return "You don't have room to carry that many."
	case UserNotAllowed:
		return fmt.Sprintf("Your character can't use %s.", name)
	case InsufficientFunds:
		return "You can't afford that."
	case NoQuantitySelected:
		return "Choose how many you want first."
	case InsufficientOwned:
		return fmt.Sprintf("You don't have %d %s to sell.", qty, name)
	case NoSelection:
		return "Pick something first."
	case SessionClosed:
		return "The shop is closed."
	}
	return "Something went wrong."
}
