package conversation

import (
	"fmt"
	"time"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/facility"
)

// Typing pauses before each reply, by conversational weight.
const (
	delayGreeting       = 500 * time.Millisecond
	delayAskZip         = 600 * time.Millisecond
	delayShort          = 800 * time.Millisecond
	delayDefault        = 1000 * time.Millisecond
	delayRevealQuote    = 1200 * time.Millisecond
	delayDatePicker     = 1500 * time.Millisecond
	delayQuoteTeaser    = 1500 * time.Millisecond
	delayConfirmation   = 1500 * time.Millisecond
	delayClosing        = 1700 * time.Millisecond
	delayInventoryQuote = 2000 * time.Millisecond
	delayZipAck         = 2000 * time.Millisecond
	delayFacilityCard   = 2500 * time.Millisecond
	delayDateSummary    = 2500 * time.Millisecond
)

const (
	copyGreeting = "Hi there! 👋 Welcome to 1-800-PACK-RAT. I'm here to help make your move as smooth and stress-free as possible. Whether you're moving across town or across the country, I've got you covered!\n\nAre you ready to get started?"

	copyTellMore = "Of course! Here's what makes 1-800-PACK-RAT special:\n\n📦 **Flexible Storage** — Keep your container as long as you need\n🚚 **Door-to-Door Service** — We deliver and pick up at your convenience\n🔒 **Secure & Protected** — Weather-resistant steel containers with content protection\n💰 **Transparent Pricing** — No hidden fees, and I can often find you discounts!\n\nWhenever you're ready, just let me know and we'll get started! 🎉"

	copyAskZip = "Wonderful! Let's find the best moving solution for you. 🚚\n\nFirst, I'll need to know where you're moving from and to — just enter both ZIP codes below:"

	copyCheckingRoute = "Thanks! Let me check availability for your route... 🔍"

	copyFacilityIntro = "Wonderful news! ✅ I found availability for your move. Your booking will be handled by our local team who knows your area well:"

	copyShowCalendar = "Here's the calendar — available dates are highlighted. Just click on the date that works best for you:"

	copyInventoryChosen = "Absolutely! I love when customers use this — it really helps ensure you get exactly the right size. Take your time going through each room. If you're not sure about something, it's always better to include it! 😊"

	copyQuickEstimate = "No problem at all! Just give me a rough idea — how many rooms worth of stuff are you moving? For example: studio, 1-2 rooms, 3-4 rooms, or more?"

	copyInventoryThanks = "Thanks for taking the time to go through that! Based on your inventory, I can now give you a really accurate recommendation. 👍"

	copyOfferReassurance = "I totally understand wanting to know more! This container size was specifically chosen based on what you told me about your move. It gives you enough room to pack comfortably without paying for space you won't use.\n\nThe best part? If you find you need more space, we can always adjust. Would you like to go ahead with this option, or do you have any other questions? I'm happy to help!"

	copyShowAddOns = "Great! Here are some popular add-ons that customers find really helpful. Take your time and select any that you'd like — no pressure! 😊"

	copyUsePicker = "Take your time looking through the options above! These are some of our most popular add-ons that customers find really helpful. No pressure though — just pick what makes sense for your move, or skip if you're all set. 😊"

	copyCollectContact = "Wonderful! 🎉 You're almost there! Just need a few details to finalize your reservation. Don't worry — your information is secure and we'll only use it to coordinate your move and send you important updates."

	copyClarify = "Of course! I want you to feel 100% confident about your choice. What questions can I answer for you? I'm here to help with anything — pricing, container features, scheduling flexibility, you name it!"

	copyFillForm = "Just fill out the form above whenever you're ready! I'll wait right here. 😊"

	copyStillHere = "Of course! I'm still here if you need anything else. Whether it's questions about your upcoming move, making changes to your reservation, or anything else — just let me know!"

	copyMisunderstood = "I'm sorry, I didn't quite catch that. Could you tell me a bit more about what you're looking for? I'm here to help!"

	copyNoAddOnsUser = "No add-ons needed"

	fallbackTitle     = "container"
	fallbackContainer = "Container"
	fallbackDate      = "your selected date"
	fallbackDelivery  = "TBD"
	fallbackFacility  = "local facility"
	fallbackArea      = "your area"
)

func copyZipUser(origin, destination string) string {
	return fmt.Sprintf("Moving from %s to %s", origin, destination)
}

func copyDateSummary(count int) string {
	return fmt.Sprintf("I found **%d available delivery dates** over the next few weeks. 📅\n\nWhenever you're ready, I'll show you the calendar to pick the date that works best for your schedule.", count)
}

func copySizeMethod(date string) string {
	return fmt.Sprintf("%s — great choice! 📅 That gives us plenty of time to make sure everything is ready for you.\n\n"+
		"Now, to recommend the perfect container size, I have two options:\n\n"+
		"• **Inventory Estimator** — takes about a minute and gives you the most accurate recommendation\n\n"+
		"• **Quick estimate** — just tell me roughly how many rooms you're moving\n\n"+
		"What would you prefer?", date)
}

func copyInventoryUser(recommendation string) string {
	return fmt.Sprintf("Inventory complete: %s worth of items", recommendation)
}

func copyDiscountCallout(d catalog.Discount, offer catalog.Offer) string {
	return fmt.Sprintf(" I found a **%s** that saves you **%d%%** — I've already applied the code **%s** to your quote. That brings your monthly rate from ~~%s~~ down to **%s**.",
		d.Description, d.Percentage, d.Code, offer.OriginalMonthlyPrice, offer.MonthlyPrice)
}

func copyQuoteTeaser(size, callout string) string {
	return fmt.Sprintf("🎯 Based on your %s move, I've found the best deal for you!%s\n\nYour personalized quote is ready. Would you like to see it?", size, callout)
}

func copyQuoteCard(size string) string {
	return fmt.Sprintf("Here's your personalized quote for your %s move:", size)
}

func copySelectOfferUser(title string) string {
	return fmt.Sprintf("I'd like to select the %s", title)
}

func copyAddOnsTeaser(title string) string {
	return fmt.Sprintf("Excellent choice! The %s is perfect for your move. 🎉\n\nBefore we wrap up, I wanted to show you a few popular add-ons that other customers moving similar distances have found really helpful. Would you like to take a look?", title)
}

func copySkipSummary(title, date string) string {
	return fmt.Sprintf("No problem! Sometimes you just need the container and that's totally fine. 😊\n\nSo here's the summary: Your **%s** is ready to go for **%s**, with your discount already applied.\n\nShall we finalize your reservation?", title, date)
}

func copyAddOnsUser(count int) string {
	if count == 1 {
		return "Selected 1 add-on"
	}
	return fmt.Sprintf("Selected %d add-ons", count)
}

func copyAddOnsSummary(title, date string) string {
	return fmt.Sprintf("Great picks! Those will definitely come in handy. 👍\n\nAlright, here's where we're at: Your **%s** is reserved for **%s**, and I've noted your add-ons. Your discount has been pre-applied to give you the best price.\n\nReady to lock this in? Just say the word and we'll get you set up!", title, date)
}

func copyContactUser(name, email string) string {
	return fmt.Sprintf("%s, %s", name, email)
}

func copyAllSet(name string) string {
	return fmt.Sprintf("You're all set, %s! 🎉", name)
}

func copyClosing(name string, f *facility.Facility, quoteID string) string {
	facilityName, city := fallbackFacility, fallbackArea
	if f != nil {
		facilityName, city = f.Name, f.City
	}
	return fmt.Sprintf("It was my pleasure helping you today, %s! Our team at the %s in %s will reach out if they need anything.\n\n"+
		"Your **Quote ID is %s** — please save this for your records.\n\n"+
		"📞 If you have any questions before your move date, call us at **1-800-PACK-RAT (1-800-722-5728)** and mention your Quote ID for quick assistance.\n\n"+
		"Good luck with your move! 🏠✨\n\n"+
		"📹 **Pro Tip:** Want to make the most of your container space? Check out our helpful video guide on how to load your container like a pro: [Watch Loading Tips Video](https://www.youtube.com/watch?v=re5ay2BTGz4)",
		name, facilityName, city, quoteID)
}
